package models

// Identity is the authenticated caller as carried by a verified bearer token.
type Identity struct {
	Email string
}

func (i Identity) IsZero() bool {
	return i.Email == ""
}

func (i Identity) String() string {
	return i.Email
}
