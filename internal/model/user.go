package model

// User is a store account.
//
// Optional fields are pointers so absent and empty values can be told
// apart, both on input payloads and in nullable columns. Password is
// stored and returned in plaintext; that is the documented behavior of
// this API, preserved deliberately.
type User struct {
	ID         int64   `json:"id"`
	Username   string  `json:"username"`
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty"`
	Password   *string `json:"password,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	UserStatus int32   `json:"userStatus"`
}

// UserUpdate is a typed field-update set for partial user updates.
//
// Only non-nil fields are written, each through a parameterized
// statement; column names never come from client input.
type UserUpdate struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	Phone      *string `json:"phone"`
	UserStatus *int32  `json:"userStatus"`
}

// Empty reports whether the update would touch no columns.
func (u UserUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.Password == nil && u.Phone == nil && u.UserStatus == nil
}
