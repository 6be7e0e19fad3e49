package profiles

// Details is the aggregated profile document consumed by the resume
// generation pipeline and exposed over the user-details endpoint.
// Soft-deleted rows are always excluded from every list.
type Details struct {
	UserProfile    UserProfile     `json:"userProfile"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Achievements   []Achievement   `json:"achievements"`
	Experiences    []Experience    `json:"experiences"`
	Publications   []Publication   `json:"publications"`
	Skills         []Skill         `json:"skills"`
	Education      []Education     `json:"education"`
	Categories     []Category      `json:"categories"`
	Technologies   []string        `json:"technologies"`
}

type UserProfile struct {
	UserID             int64   `json:"user_id"`
	Username           string  `json:"username"`
	Email              string  `json:"email"`
	ProfileID          int64   `json:"profile_id"`
	Name               *string `json:"name"`
	Designation        *string `json:"designation"`
	Bio                *string `json:"bio"`
	Introduction       *string `json:"introduction"`
	City               *string `json:"city"`
	Province           *string `json:"province"`
	Country            *string `json:"country"`
	PhoneNumber        *string `json:"phone_number"`
	SecondaryEmail     *string `json:"secondary_email"`
	WebsiteURL         *string `json:"website_url"`
	PersonalWebsiteURL *string `json:"personal_website_url"`
	Links              []Link  `json:"links"`
}

type Link struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Type  *string `json:"type"`
}

type Project struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	SortingOrder int      `json:"sorting_order"`
	Category     *string  `json:"category"`
	Links        []Link   `json:"links"`
	Technologies []string `json:"technologies"`
}

type Certification struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	InstituteName *string `json:"institute_name"`
}

type Achievement struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

type Experience struct {
	ID          int64   `json:"id"`
	CompanyName string  `json:"company_name"`
	Role        *string `json:"role"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
	Skills      *string `json:"skills"`
	Location    *string `json:"location"`
}

type Publication struct {
	ID             int64   `json:"id"`
	PaperName      string  `json:"paper_name"`
	ConferenceName *string `json:"conference_name"`
	Description    *string `json:"description"`
	PublishedDate  *string `json:"published_date"`
	PaperLink      *string `json:"paper_link"`
}

type Skill struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Category         *string `json:"category"`
	ProficiencyLevel *string `json:"proficiency_level"`
	Description      *string `json:"description"`
}

type Education struct {
	ID             int64   `json:"id"`
	UniversityName string  `json:"university_name"`
	Degree         *string `json:"degree"`
	FromDate       *string `json:"from_date"`
	EndDate        *string `json:"end_date"`
	Location       *string `json:"location"`
	CGPA           *string `json:"cgpa"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}
