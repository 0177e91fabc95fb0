package content

const DefaultLang = "hu"

// Record is a validated, storable value of one kind.
type Record interface {
	Kind() Kind
	// Fields returns the record as a field map keyed by its JSON names.
	Fields() map[string]any
	// SetDefaults fills fields that have declared defaults.
	SetDefaults()
}

type NewsPost struct {
	Title       string     `json:"title" validate:"required"`
	Slug        string     `json:"slug" validate:"required"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Body        string     `json:"body" validate:"required"`
	Lang        string     `json:"lang" validate:"required"` // hu, en, de, ro
	CoverURL    *string    `json:"cover_url,omitempty"`
	Tags        []string   `json:"tags"`
	PublishedAt *Timestamp `json:"published_at,omitempty"`
	Featured    bool       `json:"featured"`
}

type Review struct {
	Name    string  `json:"name" validate:"required"`
	Rating  *int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string  `json:"comment" validate:"required"`
	Lang    string  `json:"lang"`
	Source  *string `json:"source,omitempty"` // Google, Facebook, ...
}

type Horse struct {
	Name        string  `json:"name" validate:"required"`
	Breed       *string `json:"breed,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Description *string `json:"description,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	Temperament *string `json:"temperament,omitempty"`
}

type TeamMember struct {
	Name     string  `json:"name" validate:"required"`
	Role     string  `json:"role" validate:"required"`
	Bio      *string `json:"bio,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

type ContactMessage struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty"`
	Subject string  `json:"subject" validate:"required"`
	Message string  `json:"message" validate:"required"`
	Lang    string  `json:"lang"`
}

type BookingRequest struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone,omitempty"`
	Lang  string  `json:"lang"`
	// Date is free text, ISO or otherwise.
	Date      string  `json:"date" validate:"required"`
	GroupSize *int    `json:"group_size" validate:"required,min=1,max=50"`
	Program   string  `json:"program" validate:"required"`
	Notes     *string `json:"notes,omitempty"`
}

type FaqItem struct {
	Category string `json:"category" validate:"required"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Lang     string `json:"lang"`
}

func (*NewsPost) Kind() Kind       { return KindNewsPost }
func (*Review) Kind() Kind         { return KindReview }
func (*Horse) Kind() Kind          { return KindHorse }
func (*TeamMember) Kind() Kind     { return KindTeamMember }
func (*ContactMessage) Kind() Kind { return KindContactMessage }
func (*BookingRequest) Kind() Kind { return KindBookingRequest }
func (*FaqItem) Kind() Kind        { return KindFaqItem }

func (n *NewsPost) SetDefaults() {
	if n.Tags == nil {
		n.Tags = []string{}
	}
}

func (r *Review) SetDefaults()         { r.Lang = langOrDefault(r.Lang) }
func (*Horse) SetDefaults()            {}
func (*TeamMember) SetDefaults()       {}
func (c *ContactMessage) SetDefaults() { c.Lang = langOrDefault(c.Lang) }
func (b *BookingRequest) SetDefaults() { b.Lang = langOrDefault(b.Lang) }
func (f *FaqItem) SetDefaults()        { f.Lang = langOrDefault(f.Lang) }

func (n *NewsPost) Fields() map[string]any {
	var publishedAt any
	if n.PublishedAt != nil {
		publishedAt = n.PublishedAt.Time.UTC()
	}

	return map[string]any{
		"title":        n.Title,
		"slug":         n.Slug,
		"excerpt":      optional(n.Excerpt),
		"body":         n.Body,
		"lang":         n.Lang,
		"cover_url":    optional(n.CoverURL),
		"tags":         n.Tags,
		"published_at": publishedAt,
		"featured":     n.Featured,
	}
}

func (r *Review) Fields() map[string]any {
	return map[string]any{
		"name":    r.Name,
		"rating":  optional(r.Rating),
		"comment": r.Comment,
		"lang":    r.Lang,
		"source":  optional(r.Source),
	}
}

func (h *Horse) Fields() map[string]any {
	return map[string]any{
		"name":        h.Name,
		"breed":       optional(h.Breed),
		"age":         optional(h.Age),
		"description": optional(h.Description),
		"photo_url":   optional(h.PhotoURL),
		"temperament": optional(h.Temperament),
	}
}

func (t *TeamMember) Fields() map[string]any {
	return map[string]any{
		"name":      t.Name,
		"role":      t.Role,
		"bio":       optional(t.Bio),
		"photo_url": optional(t.PhotoURL),
	}
}

func (c *ContactMessage) Fields() map[string]any {
	return map[string]any{
		"name":    c.Name,
		"email":   c.Email,
		"phone":   optional(c.Phone),
		"subject": c.Subject,
		"message": c.Message,
		"lang":    c.Lang,
	}
}

func (b *BookingRequest) Fields() map[string]any {
	return map[string]any{
		"name":       b.Name,
		"email":      b.Email,
		"phone":      optional(b.Phone),
		"lang":       b.Lang,
		"date":       b.Date,
		"group_size": optional(b.GroupSize),
		"program":    b.Program,
		"notes":      optional(b.Notes),
	}
}

func (f *FaqItem) Fields() map[string]any {
	return map[string]any{
		"category": f.Category,
		"question": f.Question,
		"answer":   f.Answer,
		"lang":     f.Lang,
	}
}

func langOrDefault(lang string) string {
	if lang == "" {
		return DefaultLang
	}
	return lang
}

// optional unwraps p so that absent values are stored as an untyped nil.
func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
