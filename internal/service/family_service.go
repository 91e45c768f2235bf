package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/internal/auth"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/pkg/api"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
)

// RelationshipSelf marks the owner's own member row.
const RelationshipSelf = "self"

var (
	errNoFamily = errors.New("you are not part of a family")
	errNotOwner = errors.New("only the family owner can change members")
)

// FamilyService implements the FamilyService RPC interface.
type FamilyService struct {
	apiconnect.UnimplementedFamilyServiceHandler
	store storage.Store
}

// NewFamilyService creates a FamilyService.
func NewFamilyService(store storage.Store) *FamilyService {
	return &FamilyService{store: store}
}

// CreateFamily creates a household owned by the caller and adds them as its first member.
func (s *FamilyService) CreateFamily(ctx context.Context, req *connect.Request[api.CreateFamilyRequest]) (*connect.Response[api.CreateFamilyResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}

	profile, err := s.store.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, storeError("get profile", err)
	}
	if profile.FamilyID != "" {
		return nil, connect.NewError(connect.CodeAlreadyExists, errors.New("you already belong to a family"))
	}

	family := &models.Family{Name: name, OwnerID: userID}
	if err := s.store.CreateFamily(ctx, family); err != nil {
		return nil, storeError("create family", err)
	}
	self := &models.FamilyMember{
		FamilyID:     family.ID,
		Name:         profile.DisplayName,
		Relationship: RelationshipSelf,
		ProfileID:    userID,
	}
	if err := s.store.AddFamilyMember(ctx, self); err != nil {
		return nil, storeError("add owner", err)
	}

	slog.Info("Family created", "user_id", userID, "family_id", family.ID)
	return connect.NewResponse(&api.CreateFamilyResponse{
		Family: toAPIFamily(family, []*models.FamilyMember{self}),
	}), nil
}

// GetFamily returns the caller's family with its members.
func (s *FamilyService) GetFamily(ctx context.Context, req *connect.Request[api.GetFamilyRequest]) (*connect.Response[api.GetFamilyResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	family, err := s.callerFamily(ctx, userID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListFamilyMembers(ctx, family.ID)
	if err != nil {
		return nil, storeError("list family members", err)
	}
	return connect.NewResponse(&api.GetFamilyResponse{Family: toAPIFamily(family, members)}), nil
}

// AddMember adds a person to the caller's family. Only the owner may do this.
// When Email matches an account without a family, that account joins.
func (s *FamilyService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}

	family, err := s.ownedFamily(ctx, userID)
	if err != nil {
		return nil, err
	}

	member := &models.FamilyMember{
		FamilyID:     family.ID,
		Name:         name,
		Relationship: strings.TrimSpace(req.Msg.Relationship),
	}

	var linked *models.Profile
	if req.Msg.Email != "" {
		linked, err = s.store.GetProfileByEmail(ctx, auth.NormalizeEmail(req.Msg.Email))
		if err != nil {
			return nil, storeError("find account", err)
		}
		if linked.FamilyID != "" {
			return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("that account already belongs to a family"))
		}
		member.ProfileID = linked.ID
	}

	if err := s.store.AddFamilyMember(ctx, member); err != nil {
		return nil, storeError("add family member", err)
	}
	if linked != nil {
		linked.FamilyID = family.ID
		linked.UpdatedAt = time.Now().Unix()
		if err := s.store.UpdateProfile(ctx, linked); err != nil {
			return nil, storeError("link account", err)
		}
	}

	slog.Info("Family member added", "user_id", userID, "family_id", family.ID, "member_id", member.ID, "linked", linked != nil)
	return connect.NewResponse(&api.AddMemberResponse{Member: toAPIMember(member)}), nil
}

// RemoveMember removes a member from the caller's family. Only the owner may
// do this and the owner cannot remove themselves.
func (s *FamilyService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.MemberID == "" {
		return nil, invalidArgument("member_id is required")
	}

	family, err := s.ownedFamily(ctx, userID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListFamilyMembers(ctx, family.ID)
	if err != nil {
		return nil, storeError("list family members", err)
	}
	var target *models.FamilyMember
	for _, m := range members {
		if m.ID == req.Msg.MemberID {
			target = m
			break
		}
	}
	if target == nil {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("family member not found"))
	}
	if target.ProfileID == userID {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("the owner cannot be removed"))
	}

	if err := s.store.RemoveFamilyMember(ctx, family.ID, target.ID); err != nil {
		return nil, storeError("remove family member", err)
	}
	if target.ProfileID != "" {
		p, err := s.store.GetProfileByID(ctx, target.ProfileID)
		if err != nil {
			return nil, storeError("get linked profile", err)
		}
		p.FamilyID = ""
		p.UpdatedAt = time.Now().Unix()
		if err := s.store.UpdateProfile(ctx, p); err != nil {
			return nil, storeError("unlink account", err)
		}
	}

	slog.Info("Family member removed", "user_id", userID, "family_id", family.ID, "member_id", target.ID)
	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

func (s *FamilyService) callerFamily(ctx context.Context, userID string) (*models.Family, error) {
	profile, err := s.store.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, storeError("get profile", err)
	}
	if profile.FamilyID == "" {
		return nil, connect.NewError(connect.CodeNotFound, errNoFamily)
	}
	family, err := s.store.GetFamily(ctx, profile.FamilyID)
	if err != nil {
		return nil, storeError("get family", err)
	}
	return family, nil
}

func (s *FamilyService) ownedFamily(ctx context.Context, userID string) (*models.Family, error) {
	family, err := s.callerFamily(ctx, userID)
	if err != nil {
		return nil, err
	}
	if family.OwnerID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotOwner)
	}
	return family, nil
}
