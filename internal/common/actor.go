package common

import (
	"context"

	"github.com/yatube-lab/backend/pkg/enum"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type ActorState int

var (
	ActorAnonymous = enum.New(ActorState(0), "anonymous")
	ActorNonOwner  = enum.New(ActorState(1), "non_owner")
	ActorOwner     = enum.New(ActorState(2), "owner")
)

func (s ActorState) String() string {
	return enum.ToString(s)
}

// Actor classifies the request user against the owner of a resource.
func Actor(ctx context.Context, ownerID string) ActorState {
	userID := xcontext.RequestUserID(ctx)
	switch {
	case userID == "":
		return ActorAnonymous
	case userID == ownerID:
		return ActorOwner
	default:
		return ActorNonOwner
	}
}
