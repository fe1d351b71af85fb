package types

// User is the full stored alumni record, bcrypt hash included. JSON tags match
// the on-disk field names in data/users.json; only the PublicProfile projection
// is ever rendered for other members.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Batch        string `json:"batch"`
	Department   string `json:"department"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Bio          string `json:"bio"`
	Company      string `json:"company"`
	Position     string `json:"position"`
	RegisteredAt string `json:"registeredAt"`
}

// PublicProfile is what the directory shows: everything except credentials
// and private contact fields.
type PublicProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Batch      string `json:"batch"`
	Department string `json:"department"`
	City       string `json:"city"`
	Company    string `json:"company"`
	Position   string `json:"position"`
}

func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Batch:      u.Batch,
		Department: u.Department,
		City:       u.City,
		Company:    u.Company,
		Position:   u.Position,
	}
}

type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Organizer   string `json:"organizer"`
	CreatedAt   string `json:"createdAt"`
}

type Job struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	ContactEmail string `json:"contactEmail"`
	PostedBy     string `json:"postedBy"`
	PostedAt     string `json:"postedAt"`
}

type News struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
}
