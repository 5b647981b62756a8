package model

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPair(t *testing.T) {
	low, high := CanonicalPair("u2", "u1")
	assert.Equal(t, "u1", low)
	assert.Equal(t, "u2", high)

	low2, high2 := CanonicalPair("u1", "u2")
	assert.Equal(t, low, low2)
	assert.Equal(t, high, high2)
}

func TestRelationshipStateOrder(t *testing.T) {
	states := []RelationshipState{StateNone, StateFriends, StateCanBeAccepted, StateInvited}
	sort.Slice(states, func(i, j int) bool { return states[i] > states[j] })
	assert.Equal(t, AllRelationshipStates, states)
}

func TestParseRelationshipStates(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []RelationshipState
		wantErr bool
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "Friends", want: []RelationshipState{StateFriends}},
		{name: "pipe", raw: "Friends|Invited", want: []RelationshipState{StateFriends, StateInvited}},
		{name: "comma_case_insensitive", raw: "canbeaccepted,none", want: []RelationshipState{StateCanBeAccepted, StateNone}},
		{name: "dedupe", raw: "None|None", want: []RelationshipState{StateNone}},
		{name: "unknown", raw: "Friends|Enemies", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelationshipStates(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelationshipStateJSON(t *testing.T) {
	data, err := json.Marshal(map[string]RelationshipState{"state": StateCanBeAccepted})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"CanBeAccepted"}`, string(data))

	var out struct {
		State RelationshipState `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"state":"Friends"}`), &out))
	assert.Equal(t, StateFriends, out.State)

	_, err = RelationshipState(9).MarshalText()
	assert.Error(t, err)
}

func TestFriendshipOther(t *testing.T) {
	f := &Friendship{
		FirstFriendId:  "a",
		SecondFriendId: "b",
		FirstFriend:    User{Id: "a"},
		SecondFriend:   User{Id: "b"},
	}
	assert.Equal(t, "b", f.Other("a").Id)
	assert.Equal(t, "a", f.Other("b").Id)
	assert.Equal(t, "a", f.OtherID("b"))
}

func TestRelationEventKey(t *testing.T) {
	a := RelationEvent{InviterId: "u2", InvitedId: "u1"}
	b := RelationEvent{InviterId: "u1", InvitedId: "u2"}
	assert.Equal(t, a.Key(), b.Key())
}
