package domain

type Video struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
	UserID   string `json:"userId"`
	User     *User  `json:"user,omitempty"`
}

// EditableBy reports whether u may edit or delete the ad: admins and the uploader only.
func (v Video) EditableBy(u *User) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || (v.UserID != "" && v.UserID == u.ID)
}
