package domain

// ClientRecord is one row of the external client directory. Name is the
// display key; Profession may be blank.
type ClientRecord struct {
	Name       string `json:"name"`
	Profession string `json:"profession"`
}
