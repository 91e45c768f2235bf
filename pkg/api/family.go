package api

type CreateFamilyRequest struct {
	Name string `json:"name"`
}

type CreateFamilyResponse struct {
	Family *Family `json:"family"`
}

// GetFamilyRequest returns the caller's family.
type GetFamilyRequest struct{}

type GetFamilyResponse struct {
	Family *Family `json:"family"`
}

// AddMemberRequest adds a household member. When Email names an existing
// account, that account joins the family.
type AddMemberRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Email        string `json:"email,omitempty"`
}

type AddMemberResponse struct {
	Member *FamilyMember `json:"member"`
}

type RemoveMemberRequest struct {
	MemberID string `json:"memberId"`
}

type RemoveMemberResponse struct{}
