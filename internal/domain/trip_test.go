package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(id string) *User {
	return &User{ID: id, Email: id + "@example.com", FullName: "User " + id}
}

func TestTrip_MembershipPredicates(t *testing.T) {
	owner := user("u1")
	co := user("u2")
	member := user("u3")

	trip := &Trip{
		ID:           1,
		Capacity:     3,
		OwnerID:      owner.ID,
		Owner:        owner,
		Participants: []*User{owner, co, member},
		CoOwners:     []*User{co},
	}

	assert.True(t, trip.IsOwner("u1"))
	assert.False(t, trip.IsOwner("u2"))

	assert.True(t, trip.IsCoOwner("u2"))
	assert.False(t, trip.IsCoOwner("u1"))
	assert.False(t, trip.IsCoOwner("u3"))

	assert.True(t, trip.CanEdit("u1"))
	assert.True(t, trip.CanEdit("u2"))
	assert.False(t, trip.CanEdit("u3"))
	assert.False(t, trip.CanEdit("stranger"))

	assert.True(t, trip.IsParticipant("u3"))
	assert.False(t, trip.IsParticipant("stranger"))

	assert.Equal(t, 3, trip.CurrentParticipantCount())
	assert.False(t, trip.HasAvailableSpots())

	trip.Capacity = 4
	assert.True(t, trip.HasAvailableSpots())
}

func TestTrip_RemoveParticipantAlsoRemovesCoOwner(t *testing.T) {
	owner := user("u1")
	co := user("u2")
	trip := &Trip{
		Capacity:     5,
		OwnerID:      owner.ID,
		Participants: []*User{owner, co},
		CoOwners:     []*User{co},
	}

	trip.RemoveParticipant("u2")

	assert.False(t, trip.IsParticipant("u2"))
	assert.False(t, trip.IsCoOwner("u2"))
	assert.Equal(t, 1, trip.CurrentParticipantCount())
}

func TestTrip_RemoveCoOwnerKeepsParticipant(t *testing.T) {
	owner := user("u1")
	co := user("u2")
	trip := &Trip{
		Capacity:     5,
		OwnerID:      owner.ID,
		Participants: []*User{owner, co},
		CoOwners:     []*User{co},
	}

	trip.RemoveCoOwner("u2")

	assert.True(t, trip.IsParticipant("u2"))
	assert.False(t, trip.IsCoOwner("u2"))
}

func TestTrip_MarshalJSONIncludesComputedFields(t *testing.T) {
	owner := user("u1")
	trip := &Trip{
		ID:           7,
		Name:         "Alps",
		Capacity:     2,
		OwnerID:      owner.ID,
		Participants: []*User{owner},
		CoOwners:     []*User{},
	}

	raw, err := json.Marshal(trip)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.EqualValues(t, 1, got["current_participant_count"])
	assert.Equal(t, true, got["has_available_spots"])
	_, hasStamp := got["concurrency_stamp"]
	assert.False(t, hasStamp, "concurrency stamp must not leak into responses")
}
