package domain

import "encoding/json"

// User is a person who can be assigned to a project team.
type User struct {
	ID     int64
	Name   string
	Email  string
	Branch string
	Type   UserType
}

// userJSON accepts the field aliases the user endpoints return.
type userJSON struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	FullName          string   `json:"fullName"`
	Email             string   `json:"email"`
	EmailAddress      string   `json:"emailAddress"`
	Branch            string   `json:"branch"`
	BranchDisplayName string   `json:"branchDisplayName"`
	Type              UserType `json:"type"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw userJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User{
		ID:     raw.ID,
		Name:   CoalesceStr(raw.Name, raw.FullName),
		Email:  CoalesceStr(raw.EmailAddress, raw.Email),
		Branch: CoalesceStr(raw.BranchDisplayName, raw.Branch),
		Type:   raw.Type,
	}
	return nil
}

// Key returns the picker identity of the user.
func (u User) Key() int64 { return u.ID }

// Customer is a client that owns projects.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Address string `json:"address,omitempty"`
}

// Task is a unit of work that can be assigned to a project.
type Task struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Key returns the picker identity of the task.
func (t Task) Key() int64 { return t.ID }

// Branch is an office location, used as a filter for team selection.
type Branch struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
}

// Label returns the name shown in filters.
func (b Branch) Label() string {
	return CoalesceStr(b.DisplayName, b.Name)
}
