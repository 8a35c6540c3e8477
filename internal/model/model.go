package model

// ReadStatus is the shelf a book sits on. A book has exactly one.
type ReadStatus string

const (
	StatusPast     ReadStatus = "past"
	StatusCurrent  ReadStatus = "current"
	StatusWishlist ReadStatus = "wishlist"
)

func (s ReadStatus) Valid() bool {
	switch s {
	case StatusPast, StatusCurrent, StatusWishlist:
		return true
	}
	return false
}

func Statuses() []ReadStatus {
	return []ReadStatus{StatusPast, StatusCurrent, StatusWishlist}
}

type User struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	FirebaseUID string `json:"firebaseUID"`
}

// Book is a record in the user's collection. ID is assigned by the
// collection backend; GoogleBooksID references the catalog volume the
// book was added from and is unique within one user's collection.
type Book struct {
	ID            string     `json:"_id"`
	GoogleBooksID string     `json:"googleBooksId"`
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	Description   string     `json:"description,omitempty"`
	ReadStatus    ReadStatus `json:"readStatus"`
	UserRating    *int       `json:"userRating,omitempty"`
	UserReview    *string    `json:"userReview,omitempty"`
}

// Reviewed reports whether the book carries a rating or a review.
func (b Book) Reviewed() bool {
	return b.UserRating != nil || b.UserReview != nil
}

// Volume is a catalog search hit. It is never stored; the fields a user
// keeps are copied into a Book at add time.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title       string      `json:"title"`
	Authors     []string    `json:"authors,omitempty"`
	ImageLinks  *ImageLinks `json:"imageLinks,omitempty"`
	Description string      `json:"description,omitempty"`
}

type ImageLinks struct {
	Thumbnail string `json:"thumbnail"`
}

type RegisterRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	FirebaseUID string `json:"firebaseUID" validate:"required"`
}

type LoginRequest struct {
	IDToken     string `json:"idToken" validate:"required"`
	FirebaseUID string `json:"firebaseUID" validate:"required"`
}

type LoginResult struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// AddBookRequest carries the fields copied from a catalog volume plus the
// target shelf. Rating and review drafts entered before the add confirms
// are applied in a follow-up update against the created record's id.
type AddBookRequest struct {
	GoogleBooksID string     `json:"googleBooksId" validate:"required"`
	Title         string     `json:"title" validate:"required"`
	Authors       []string   `json:"authors"`
	Description   string     `json:"description,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	ReadStatus    ReadStatus `json:"readStatus" validate:"required"`
	UserRating    *int       `json:"userRating,omitempty" validate:"omitempty,min=1,max=5"`
	UserReview    *string    `json:"userReview,omitempty"`
}

type UpdateBookRequest struct {
	ReadStatus *ReadStatus `json:"readStatus,omitempty"`
	UserRating *int        `json:"userRating,omitempty" validate:"omitempty,min=1,max=5"`
	UserReview *string     `json:"userReview,omitempty"`
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
