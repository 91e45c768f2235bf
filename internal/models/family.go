package models

// Family is a household that several profiles can share.
type Family struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt int64
}

// FamilyMember is a person in a household.
// ProfileID is set only when the member has their own login.
type FamilyMember struct {
	ID           string
	FamilyID     string
	Name         string
	Relationship string
	ProfileID    string
	CreatedAt    int64
}
