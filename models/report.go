package models

// DashboardStats backs the admin dashboard cards.
type DashboardStats struct {
	Users          int                   `json:"users"`
	Customers      int                   `json:"customers"`
	Workers        int                   `json:"workers"`
	Hoardings      int                   `json:"hoardings"`
	Available      int                   `json:"availableHoardings"`
	Bookings       int                   `json:"bookings"`
	BookingsStatus map[BookingStatus]int `json:"bookingsByStatus"`
	RevenuePaid    float64               `json:"revenuePaid"`
	RevenuePending float64               `json:"revenuePending"`
	UnreadMessages int                   `json:"unreadMessages"`
}

// MonthlyRevenue is one point of the revenue chart.
type MonthlyRevenue struct {
	Month    string  `json:"month"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
	Paid     float64 `json:"paid"`
}

// CategoryCount is one bar of the per-category chart.
type CategoryCount struct {
	CategoryID string  `json:"categoryId"`
	Bookings   int     `json:"bookings"`
	Revenue    float64 `json:"revenue"`
}

// PagedResponse wraps one page of a list endpoint.
type PagedResponse struct {
	Items      any `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PasswordChangeRequest re-verifies the current password before setting a new one.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

// AdminProfile is the signed-in administrator as shown on the settings screen.
type AdminProfile struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	LastSignIn    int64  `json:"lastSignIn,omitempty"`
}

// UploadResult is returned after a media upload.
type UploadResult struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	ResourceType string `json:"resourceType"`
}
