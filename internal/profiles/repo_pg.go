package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// ProfileIDByUserID resolves the profile that owns a user's data.
func (r *PGRepo) ProfileIDByUserID(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT id FROM profiles WHERE user_id = $1 LIMIT 1`
	var id int64
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

// Details aggregates the nested profile document from the per-entity tables.
func (r *PGRepo) Details(ctx context.Context, userID int64) (Details, error) {
	up, err := r.userProfile(ctx, userID)
	if err != nil {
		return Details{}, err
	}

	var details Details
	details.UserProfile = up

	if details.UserProfile.Links, err = r.profileLinks(ctx, up.ProfileID); err != nil {
		return Details{}, fmt.Errorf("profile links: %w", err)
	}
	if details.Projects, err = r.projects(ctx, up.ProfileID); err != nil {
		return Details{}, fmt.Errorf("projects: %w", err)
	}
	if details.Certifications, err = r.certifications(ctx, up.ProfileID); err != nil {
		return Details{}, fmt.Errorf("certifications: %w", err)
	}
	if details.Achievements, err = r.achievements(ctx, up.ProfileID); err != nil {
		return Details{}, fmt.Errorf("achievements: %w", err)
	}
	if details.Experiences, err = r.experiences(ctx, up.ProfileID); err != nil {
		return Details{}, fmt.Errorf("experiences: %w", err)
	}
	if details.Publications, err = r.publications(ctx, up.ProfileID); err != nil {
		return Details{}, fmt.Errorf("publications: %w", err)
	}
	if details.Skills, err = r.skills(ctx, up.ProfileID); err != nil {
		return Details{}, fmt.Errorf("skills: %w", err)
	}
	if details.Education, err = r.education(ctx, up.ProfileID); err != nil {
		return Details{}, fmt.Errorf("education: %w", err)
	}
	if details.Categories, err = r.categories(ctx); err != nil {
		return Details{}, fmt.Errorf("categories: %w", err)
	}

	details.Technologies = distinctTechnologies(details.Projects)
	return details, nil
}

// SaveTemplate persists a resume template on the profile.
func (r *PGRepo) SaveTemplate(ctx context.Context, profileID int64, template json.RawMessage) error {
	const query = `UPDATE profiles SET resume_template = $1, updated_at = now() WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, []byte(template), profileID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearTemplate restores the default template.
func (r *PGRepo) ClearTemplate(ctx context.Context, profileID int64) error {
	const query = `UPDATE profiles SET resume_template = NULL, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, profileID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) userProfile(ctx context.Context, userID int64) (UserProfile, error) {
	const query = `
SELECT u.id, u.username, u.email,
       p.id, p.name, p.designation, p.bio, p.introduction,
       p.city, p.province, p.country, p.phone_number, p.secondary_email,
       p.website_url, p.personal_website_url
FROM users u
JOIN profiles p ON p.user_id = u.id
WHERE u.id = $1`
	var up UserProfile
	var name, designation, bio, intro, city, province, country sql.NullString
	var phone, secondaryEmail, websiteURL, personalURL sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&up.UserID, &up.Username, &up.Email,
		&up.ProfileID, &name, &designation, &bio, &intro,
		&city, &province, &country, &phone, &secondaryEmail,
		&websiteURL, &personalURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserProfile{}, ErrNotFound
		}
		return UserProfile{}, err
	}
	up.Name = nullable(name)
	up.Designation = nullable(designation)
	up.Bio = nullable(bio)
	up.Introduction = nullable(intro)
	up.City = nullable(city)
	up.Province = nullable(province)
	up.Country = nullable(country)
	up.PhoneNumber = nullable(phone)
	up.SecondaryEmail = nullable(secondaryEmail)
	up.WebsiteURL = nullable(websiteURL)
	up.PersonalWebsiteURL = nullable(personalURL)
	return up, nil
}

func (r *PGRepo) profileLinks(ctx context.Context, profileID int64) ([]Link, error) {
	const query = `
SELECT title, url, link_type
FROM links
WHERE profile_id = $1 AND deleted_at IS NULL
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []Link{}
	for rows.Next() {
		var l Link
		var linkType sql.NullString
		if err := rows.Scan(&l.Title, &l.URL, &linkType); err != nil {
			return nil, err
		}
		l.Type = nullable(linkType)
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *PGRepo) projects(ctx context.Context, profileID int64) ([]Project, error) {
	const query = `
SELECT p.id, p.name, p.description,
       p.start_date::text, p.end_date::text, p.sorting_order, c.name
FROM projects p
LEFT JOIN categories c ON p.category_id = c.id
WHERE p.profile_id = $1 AND p.is_public = TRUE AND p.deleted_at IS NULL
ORDER BY p.sorting_order ASC, p.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []Project{}
	index := map[int64]int{}
	for rows.Next() {
		var p Project
		var description, startDate, endDate, category sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &description, &startDate, &endDate, &p.SortingOrder, &category); err != nil {
			return nil, err
		}
		p.Description = nullable(description)
		p.StartDate = nullable(startDate)
		p.EndDate = nullable(endDate)
		p.Category = nullable(category)
		p.Links = []Link{}
		p.Technologies = []string{}
		index[p.ID] = len(projects)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachProjectLinks(ctx, profileID, projects, index); err != nil {
		return nil, err
	}
	if err := r.attachProjectTechnologies(ctx, profileID, projects, index); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *PGRepo) attachProjectLinks(ctx context.Context, profileID int64, projects []Project, index map[int64]int) error {
	const query = `
SELECT l.project_id, l.title, l.url, l.link_type
FROM links l
JOIN projects p ON l.project_id = p.id
WHERE p.profile_id = $1 AND l.deleted_at IS NULL AND l.project_id IS NOT NULL
ORDER BY l.id`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var projectID int64
		var l Link
		var linkType sql.NullString
		if err := rows.Scan(&projectID, &l.Title, &l.URL, &linkType); err != nil {
			return err
		}
		l.Type = nullable(linkType)
		if i, ok := index[projectID]; ok {
			projects[i].Links = append(projects[i].Links, l)
		}
	}
	return rows.Err()
}

func (r *PGRepo) attachProjectTechnologies(ctx context.Context, profileID int64, projects []Project, index map[int64]int) error {
	const query = `
SELECT t.project_id, t.name
FROM technologies t
JOIN projects p ON t.project_id = p.id
WHERE p.profile_id = $1
ORDER BY t.id`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var projectID int64
		var name string
		if err := rows.Scan(&projectID, &name); err != nil {
			return err
		}
		if i, ok := index[projectID]; ok {
			projects[i].Technologies = append(projects[i].Technologies, name)
		}
	}
	return rows.Err()
}

func (r *PGRepo) certifications(ctx context.Context, profileID int64) ([]Certification, error) {
	const query = `
SELECT id, name, description, start_date::text, end_date::text, institute_name
FROM certifications
WHERE profile_id = $1 AND deleted_at IS NULL
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Certification{}
	for rows.Next() {
		var c Certification
		var description, startDate, endDate, institute sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description, &startDate, &endDate, &institute); err != nil {
			return nil, err
		}
		c.Description = nullable(description)
		c.StartDate = nullable(startDate)
		c.EndDate = nullable(endDate)
		c.InstituteName = nullable(institute)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) achievements(ctx context.Context, profileID int64) ([]Achievement, error) {
	const query = `
SELECT id, description
FROM achievements
WHERE profile_id = $1 AND deleted_at IS NULL
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Achievement{}
	for rows.Next() {
		var a Achievement
		if err := rows.Scan(&a.ID, &a.Description); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) experiences(ctx context.Context, profileID int64) ([]Experience, error) {
	const query = `
SELECT id, company_name, role, start_date::text, end_date::text, description, skills, location
FROM experiences
WHERE profile_id = $1 AND deleted_at IS NULL
ORDER BY start_date DESC NULLS LAST, id`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Experience{}
	for rows.Next() {
		var e Experience
		var role, startDate, endDate, description, skills, location sql.NullString
		if err := rows.Scan(&e.ID, &e.CompanyName, &role, &startDate, &endDate, &description, &skills, &location); err != nil {
			return nil, err
		}
		e.Role = nullable(role)
		e.StartDate = nullable(startDate)
		e.EndDate = nullable(endDate)
		e.Description = nullable(description)
		e.Skills = nullable(skills)
		e.Location = nullable(location)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) publications(ctx context.Context, profileID int64) ([]Publication, error) {
	const query = `
SELECT id, paper_name, conference_name, description, published_date::text, paper_link
FROM publications
WHERE profile_id = $1 AND deleted_at IS NULL
ORDER BY published_date DESC NULLS LAST, id`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Publication{}
	for rows.Next() {
		var p Publication
		var conference, description, published, link sql.NullString
		if err := rows.Scan(&p.ID, &p.PaperName, &conference, &description, &published, &link); err != nil {
			return nil, err
		}
		p.ConferenceName = nullable(conference)
		p.Description = nullable(description)
		p.PublishedDate = nullable(published)
		p.PaperLink = nullable(link)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) skills(ctx context.Context, profileID int64) ([]Skill, error) {
	const query = `
SELECT s.id, s.name, c.name, s.proficiency_level, s.description
FROM skills s
LEFT JOIN skill_categories c ON s.category_id = c.id
WHERE s.profile_id = $1 AND s.deleted_at IS NULL
ORDER BY s.id`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Skill{}
	for rows.Next() {
		var s Skill
		var category, proficiency, description sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &category, &proficiency, &description); err != nil {
			return nil, err
		}
		s.Category = nullable(category)
		s.ProficiencyLevel = nullable(proficiency)
		s.Description = nullable(description)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) education(ctx context.Context, profileID int64) ([]Education, error) {
	const query = `
SELECT id, university_name, degree, from_date::text, end_date::text, location, cgpa
FROM education
WHERE profile_id = $1 AND deleted_at IS NULL
ORDER BY from_date DESC NULLS LAST, id`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Education{}
	for rows.Next() {
		var e Education
		var degree, fromDate, endDate, location, cgpa sql.NullString
		if err := rows.Scan(&e.ID, &e.UniversityName, &degree, &fromDate, &endDate, &location, &cgpa); err != nil {
			return nil, err
		}
		e.Degree = nullable(degree)
		e.FromDate = nullable(fromDate)
		e.EndDate = nullable(endDate)
		e.Location = nullable(location)
		e.CGPA = nullable(cgpa)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) categories(ctx context.Context) ([]Category, error) {
	const query = `SELECT id, name, key FROM categories ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Key); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func distinctTechnologies(projects []Project) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range projects {
		for _, t := range p.Technologies {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

var _ Repo = (*PGRepo)(nil)
