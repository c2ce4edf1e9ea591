// Package tracker manages the persisted skill collection: creating, editing
// and deleting skills, toggling milestones, and the category list and saved
// view that go with it.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/andywolf/skilltrack/internal/kv"
	"github.com/andywolf/skilltrack/internal/skill"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store keys.
const (
	KeySkills     = "user-skills"
	KeyCategories = "skill-categories"
	KeyView       = "skills-view"
)

// DefaultCategoryColor is used when a category is added without a colour.
const DefaultCategoryColor = "#6B7280"

var (
	// ErrNotFound is returned when a skill or milestone id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateCategory is returned when adding a category name twice.
	ErrDuplicateCategory = errors.New("category already exists")
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// MetricsRecorder receives tracker activity. *metrics.Metrics satisfies it.
type MetricsRecorder interface {
	IncMutation(op string)
	SetSkillCounts(counts map[string]int)
}

// Manager owns the skill collection stored in a kv.Store. Every mutating
// call writes the full collection before it returns.
type Manager struct {
	mu sync.Mutex

	skills     *kv.Value[collection]
	categories *kv.Value[[]skill.Category]
	view       *kv.Value[skill.Criteria]

	now     func() time.Time
	newID   func() string
	logger  *zap.Logger
	metrics MetricsRecorder
	seed    bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithIDGenerator overrides the random UUID generator used for new ids.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		m.newID = newID
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(rec MetricsRecorder) Option {
	return func(m *Manager) {
		m.metrics = rec
	}
}

// WithSeed controls whether sample skills are written on first use of an
// empty store. Seeding is on by default.
func WithSeed(enabled bool) Option {
	return func(m *Manager) {
		m.seed = enabled
	}
}

// New creates a Manager over store.
func New(store kv.Store, opts ...Option) *Manager {
	m := &Manager{
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: zap.NewNop(),
		seed:   true,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.skills = kv.NewValue(store, KeySkills, func() collection { return newCollection(nil) }, m.logger)
	m.categories = kv.NewValue(store, KeyCategories, skill.DefaultCategories, m.logger)
	m.view = kv.NewValue(store, KeyView, skill.DefaultCriteria, m.logger)
	return m
}

// load returns the stored skills, seeding or migrating them as needed. The
// caller must hold m.mu.
func (m *Manager) load(ctx context.Context) ([]skill.Skill, error) {
	coll, state, err := m.skills.Get(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case state == kv.Absent && m.seed:
		coll = newCollection(skill.SeedSkills())
		if err := m.skills.Set(ctx, coll); err != nil {
			return nil, err
		}
		m.logger.Info("Seeded default skills", zap.Int("count", len(coll.Skills)))

	case state == kv.Decoded && coll.migrated:
		if err := m.skills.Set(ctx, coll); err != nil {
			return nil, err
		}
		m.logger.Info("Migrated stored skills to current schema",
			zap.Int("count", len(coll.Skills)),
			zap.Int("version", SchemaVersion),
		)

	case state == kv.Corrupt:
		m.logger.Warn("Stored skills could not be decoded; starting from an empty collection")
	}

	m.setSkillCounts(coll.Skills)
	return coll.Skills, nil
}

// save persists skills and refreshes the status gauges. The caller must hold
// m.mu.
func (m *Manager) save(ctx context.Context, skills []skill.Skill) error {
	if err := m.skills.Set(ctx, newCollection(skills)); err != nil {
		return err
	}
	m.setSkillCounts(skills)
	return nil
}

func (m *Manager) setSkillCounts(skills []skill.Skill) {
	if m.metrics == nil {
		return
	}
	counts := map[string]int{
		string(skill.NotStarted): 0,
		string(skill.InProgress): 0,
		string(skill.Completed):  0,
	}
	for _, s := range skills {
		counts[string(s.Status)]++
	}
	m.metrics.SetSkillCounts(counts)
}

func (m *Manager) recordMutation(op string) {
	if m.metrics != nil {
		m.metrics.IncMutation(op)
	}
}

func cloneAll(skills []skill.Skill) []skill.Skill {
	out := make([]skill.Skill, len(skills))
	for i, s := range skills {
		out[i] = s.Clone()
	}
	return out
}

func indexOf(skills []skill.Skill, id string) int {
	for i, s := range skills {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID returns a fresh id not present in taken.
func (m *Manager) uniqueID(taken map[string]bool) string {
	for {
		id := m.newID()
		if id != "" && !taken[id] {
			return id
		}
	}
}

func unvalidatedError() error {
	return &skill.ValidationError{Fields: map[string]string{
		"draft": "draft must be validated before it is saved",
	}}
}

// List returns the stored skills in stored order. An empty store is seeded
// with sample skills on first access unless seeding is disabled.
func (m *Manager) List(ctx context.Context) ([]skill.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	skills, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	return cloneAll(skills), nil
}

// Get returns the skill with the given id.
func (m *Manager) Get(ctx context.Context, id string) (skill.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	skills, err := m.load(ctx)
	if err != nil {
		return skill.Skill{}, err
	}
	i := indexOf(skills, id)
	if i < 0 {
		return skill.Skill{}, fmt.Errorf("skill %s: %w", id, ErrNotFound)
	}
	return skills[i].Clone(), nil
}

// Create admits a validated draft as a new skill.
func (m *Manager) Create(ctx context.Context, vd skill.ValidatedDraft) (skill.Skill, error) {
	if !vd.Valid() {
		return skill.Skill{}, unvalidatedError()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	skills, err := m.load(ctx)
	if err != nil {
		return skill.Skill{}, err
	}

	taken := make(map[string]bool, len(skills))
	for _, s := range skills {
		taken[s.ID] = true
	}

	d := vd.Draft()
	now := m.now()
	created := skill.Skill{
		ID:          m.uniqueID(taken),
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Milestones:  m.buildMilestones(d.Milestones, nil, now),
		TargetDate:  d.TargetDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created.Status = skill.DeriveStatus(created.Milestones)

	next := append(cloneAll(skills), created)
	if err := m.save(ctx, next); err != nil {
		return skill.Skill{}, err
	}

	m.recordMutation("create")
	m.logger.Info("Skill created",
		zap.String("skill_id", created.ID),
		zap.String("name", created.Name),
		zap.Int("milestones", len(created.Milestones)),
	)
	return created.Clone(), nil
}

// Update replaces the skill with the given id using a validated draft. ID and
// CreatedAt are preserved; UpdatedAt and Status are recomputed.
func (m *Manager) Update(ctx context.Context, id string, vd skill.ValidatedDraft) (skill.Skill, error) {
	if !vd.Valid() {
		return skill.Skill{}, unvalidatedError()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	skills, err := m.load(ctx)
	if err != nil {
		return skill.Skill{}, err
	}
	i := indexOf(skills, id)
	if i < 0 {
		return skill.Skill{}, fmt.Errorf("skill %s: %w", id, ErrNotFound)
	}

	prev := skills[i]
	d := vd.Draft()
	now := m.now()
	updated := skill.Skill{
		ID:          prev.ID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Milestones:  m.buildMilestones(d.Milestones, prev.Milestones, now),
		TargetDate:  d.TargetDate,
		CreatedAt:   prev.CreatedAt,
		UpdatedAt:   now,
	}
	updated.Status = skill.DeriveStatus(updated.Milestones)

	next := cloneAll(skills)
	next[i] = updated
	if err := m.save(ctx, next); err != nil {
		return skill.Skill{}, err
	}

	m.recordMutation("update")
	m.logger.Info("Skill updated",
		zap.String("skill_id", updated.ID),
		zap.String("status", string(updated.Status)),
	)
	return updated.Clone(), nil
}

// buildMilestones turns drafts into milestones. Milestones that were already
// complete keep their original CompletedAt; newly completed ones are stamped
// with now. Blank or repeated ids are replaced with fresh ones.
func (m *Manager) buildMilestones(drafts []skill.MilestoneDraft, prev []skill.Milestone, now time.Time) []skill.Milestone {
	existing := make(map[string]skill.Milestone, len(prev))
	for _, pm := range prev {
		existing[pm.ID] = pm
	}

	taken := make(map[string]bool, len(drafts))
	for _, md := range drafts {
		if md.ID != "" {
			taken[md.ID] = true
		}
	}

	seen := make(map[string]bool, len(drafts))
	out := make([]skill.Milestone, 0, len(drafts))
	for _, md := range drafts {
		id := md.ID
		if id == "" || seen[id] {
			id = m.uniqueID(taken)
			taken[id] = true
		}
		seen[id] = true

		ms := skill.Milestone{
			ID:          id,
			Title:       md.Title,
			Description: md.Description,
			Completed:   md.Completed,
		}
		if md.Completed {
			at := now
			if pm, ok := existing[id]; ok && pm.Completed && pm.CompletedAt != nil {
				at = *pm.CompletedAt
			}
			ms.CompletedAt = &at
		}
		out = append(out, ms)
	}
	return out
}

// ToggleMilestone flips a milestone's completion, stamping or clearing its
// CompletedAt, and recomputes the parent skill's status. Unknown skill or
// milestone ids return ErrNotFound.
func (m *Manager) ToggleMilestone(ctx context.Context, skillID, milestoneID string) (skill.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	skills, err := m.load(ctx)
	if err != nil {
		return skill.Skill{}, err
	}
	i := indexOf(skills, skillID)
	if i < 0 {
		return skill.Skill{}, fmt.Errorf("skill %s: %w", skillID, ErrNotFound)
	}

	next := cloneAll(skills)
	s := &next[i]

	j := -1
	for k, ms := range s.Milestones {
		if ms.ID == milestoneID {
			j = k
			break
		}
	}
	if j < 0 {
		return skill.Skill{}, fmt.Errorf("milestone %s in skill %s: %w", milestoneID, skillID, ErrNotFound)
	}

	now := m.now()
	ms := &s.Milestones[j]
	ms.Completed = !ms.Completed
	if ms.Completed {
		at := now
		ms.CompletedAt = &at
	} else {
		ms.CompletedAt = nil
	}
	s.Status = skill.DeriveStatus(s.Milestones)
	s.UpdatedAt = now

	if err := m.save(ctx, next); err != nil {
		return skill.Skill{}, err
	}

	m.recordMutation("toggle")
	m.logger.Info("Milestone toggled",
		zap.String("skill_id", skillID),
		zap.String("milestone_id", milestoneID),
		zap.Bool("completed", ms.Completed),
		zap.String("status", string(s.Status)),
	)
	return s.Clone(), nil
}

// Delete removes the skill with the given id.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	skills, err := m.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(skills, id)
	if i < 0 {
		return fmt.Errorf("skill %s: %w", id, ErrNotFound)
	}

	next := make([]skill.Skill, 0, len(skills)-1)
	next = append(next, cloneAll(skills[:i])...)
	next = append(next, cloneAll(skills[i+1:])...)
	if err := m.save(ctx, next); err != nil {
		return err
	}

	m.recordMutation("delete")
	m.logger.Info("Skill deleted", zap.String("skill_id", id))
	return nil
}

// FilterAndSort applies criteria to skills without touching the store.
func (m *Manager) FilterAndSort(skills []skill.Skill, criteria skill.Criteria) []skill.Skill {
	return skill.FilterAndSort(skills, criteria)
}

// Stats computes dashboard statistics for skills.
func (m *Manager) Stats(skills []skill.Skill) skill.Stats {
	return skill.ComputeStats(skills)
}

// Query lists the stored skills and applies criteria.
func (m *Manager) Query(ctx context.Context, criteria skill.Criteria) ([]skill.Skill, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	skills, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	return skill.FilterAndSort(skills, criteria), nil
}

// Categories returns the category list, falling back to the defaults.
func (m *Manager) Categories(ctx context.Context) ([]skill.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cats, _, err := m.categories.Get(ctx)
	if err != nil {
		return nil, err
	}
	return cats, nil
}

// AddCategory appends a category. Names are unique; color must be "#RRGGBB"
// and defaults to DefaultCategoryColor.
func (m *Manager) AddCategory(ctx context.Context, name, color string) (skill.Category, error) {
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultCategoryColor
	}

	fields := make(map[string]string)
	if name == "" {
		fields["name"] = "Category name is required"
	}
	if !colorPattern.MatchString(color) {
		fields["color"] = "Color must be a hex value like #3B82F6"
	}
	if len(fields) > 0 {
		return skill.Category{}, &skill.ValidationError{Fields: fields}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cats, _, err := m.categories.Get(ctx)
	if err != nil {
		return skill.Category{}, err
	}
	taken := make(map[string]bool, len(cats))
	for _, c := range cats {
		if c.Name == name {
			return skill.Category{}, fmt.Errorf("%s: %w", name, ErrDuplicateCategory)
		}
		taken[c.ID] = true
	}

	cat := skill.Category{ID: m.uniqueID(taken), Name: name, Color: strings.ToUpper(color)}
	if err := m.categories.Set(ctx, append(cats, cat)); err != nil {
		return skill.Category{}, err
	}

	m.logger.Info("Category added", zap.String("name", name), zap.String("color", cat.Color))
	return cat, nil
}

// ViewCriteria returns the saved list view, or the default view.
func (m *Manager) ViewCriteria(ctx context.Context) (skill.Criteria, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, _, err := m.view.Get(ctx)
	if err != nil {
		return skill.Criteria{}, err
	}
	if c.Validate() != nil {
		return skill.DefaultCriteria(), nil
	}
	return c, nil
}

// SaveViewCriteria persists the list view.
func (m *Manager) SaveViewCriteria(ctx context.Context, c skill.Criteria) error {
	if err := c.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view.Set(ctx, c)
}
