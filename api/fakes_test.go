package api

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jahua/prism-portfolio/models"
	"gorm.io/gorm"
)

// clock hands out strictly increasing timestamps so ordering by createdAt is deterministic.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

type fakeBlogStore struct {
	mu    sync.Mutex
	clock *clock
	blogs map[uuid.UUID]models.Blog
}

func newFakeBlogStore(c *clock) *fakeBlogStore {
	return &fakeBlogStore{clock: c, blogs: map[uuid.UUID]models.Blog{}}
}

func copyBlog(b models.Blog) models.Blog {
	b.Tags = slices.Clone(b.Tags)
	return b
}

func (s *fakeBlogStore) newestFirst() []models.Blog {
	out := make([]models.Blog, 0, len(s.blogs))
	for _, b := range s.blogs {
		out = append(out, copyBlog(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *fakeBlogStore) ListPublished(_ context.Context, tag string, offset, limit int) ([]models.Blog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.Blog
	for _, b := range s.newestFirst() {
		if b.Published && (tag == "" || b.HasTag(tag)) {
			b.Content = ""
			matched = append(matched, b)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := min(offset+limit, len(matched))
	return matched[offset:end], total, nil
}

func (s *fakeBlogStore) ListAll(context.Context) ([]models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.newestFirst()
	for i := range all {
		all[i].Content = ""
	}
	return all, nil
}

func (s *fakeBlogStore) FindPublishedBySlug(_ context.Context, slug string) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.blogs {
		if b.Slug == slug && b.Published {
			found := copyBlog(b)
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeBlogStore) FindByID(_ context.Context, id uuid.UUID) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blogs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := copyBlog(b)
	return &found, nil
}

func (s *fakeBlogStore) slugTaken(slug string, except uuid.UUID) bool {
	for id, b := range s.blogs {
		if b.Slug == slug && id != except {
			return true
		}
	}
	return false
}

func (s *fakeBlogStore) Add(_ context.Context, blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slugTaken(blog.Slug, uuid.Nil) {
		return gorm.ErrDuplicatedKey
	}
	if blog.ID == uuid.Nil {
		blog.ID = uuid.New()
	}
	blog.CreatedAt = s.clock.tick()
	blog.UpdatedAt = blog.CreatedAt
	s.blogs[blog.ID] = copyBlog(*blog)
	return nil
}

func (s *fakeBlogStore) Update(_ context.Context, blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[blog.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if s.slugTaken(blog.Slug, blog.ID) {
		return gorm.ErrDuplicatedKey
	}
	blog.UpdatedAt = s.clock.tick()
	s.blogs[blog.ID] = copyBlog(*blog)
	return nil
}

func (s *fakeBlogStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.blogs, id)
	return nil
}

type fakeProjectStore struct {
	mu       sync.Mutex
	clock    *clock
	projects map[uuid.UUID]models.Project
}

func newFakeProjectStore(c *clock) *fakeProjectStore {
	return &fakeProjectStore{clock: c, projects: map[uuid.UUID]models.Project{}}
}

func copyProject(p models.Project) models.Project {
	p.Highlights = slices.Clone(p.Highlights)
	p.Stack = slices.Clone(p.Stack)
	p.Links = slices.Clone(p.Links)
	if p.Stars != nil {
		stars := *p.Stars
		p.Stars = &stars
	}
	if p.License != nil {
		license := *p.License
		p.License = &license
	}
	if p.Language != nil {
		language := *p.Language
		p.Language = &language
	}
	return p
}

func (s *fakeProjectStore) FindAll(context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, copyProject(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeProjectStore) FindByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := copyProject(p)
	return &found, nil
}

func (s *fakeProjectStore) Add(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.CreatedAt = s.clock.tick()
	project.UpdatedAt = project.CreatedAt
	s.projects[project.ID] = copyProject(*project)
	return nil
}

func (s *fakeProjectStore) Update(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[project.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	project.UpdatedAt = s.clock.tick()
	s.projects[project.ID] = copyProject(*project)
	return nil
}

func (s *fakeProjectStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.projects, id)
	return nil
}

type fakeProfileStore struct {
	mu      sync.Mutex
	clock   *clock
	profile *models.Profile
	puts    int
}

func (s *fakeProfileStore) Get(context.Context) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	p := *s.profile
	p.ResearchInterests = slices.Clone(p.ResearchInterests)
	p.Education = slices.Clone(p.Education)
	p.Publications = slices.Clone(p.Publications)
	p.Experience = slices.Clone(p.Experience)
	p.Skills = slices.Clone(p.Skills)
	p.Certifications = slices.Clone(p.Certifications)
	p.Languages = slices.Clone(p.Languages)
	return &p, nil
}

func (s *fakeProfileStore) Put(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile.ID = models.ProfileSlot
	now := s.clock.tick()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	p := *profile
	s.profile = &p
	s.puts++
	return nil
}

type fakeMessageStore struct {
	mu       sync.Mutex
	clock    *clock
	messages []models.Message
}

func (s *fakeMessageStore) Add(_ context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.CreatedAt = s.clock.tick()
	message.UpdatedAt = message.CreatedAt
	s.messages = append(s.messages, *message)
	return nil
}

func (s *fakeMessageStore) ListAll(context.Context) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := slices.Clone(s.messages)
	slices.Reverse(out)
	return out, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []models.Message
	err      error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, msg models.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return n.err
}

// panickingBlogStore fails every listing with a panic.
type panickingBlogStore struct {
	*fakeBlogStore
}

func (panickingBlogStore) ListPublished(context.Context, string, int, int) ([]models.Blog, int64, error) {
	panic("listing exploded")
}

// vanishingBlogStore deletes a post right after it is looked up by id, as a concurrent admin would.
type vanishingBlogStore struct {
	*fakeBlogStore
}

func (s vanishingBlogStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	blog, err := s.fakeBlogStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return blog, s.fakeBlogStore.Delete(ctx, id)
}

// recordingBlogStore remembers the paging arguments of the last published listing.
type recordingBlogStore struct {
	*fakeBlogStore
	offset, limit int
}

func (s *recordingBlogStore) ListPublished(ctx context.Context, tag string, offset, limit int) ([]models.Blog, int64, error) {
	s.offset, s.limit = offset, limit
	return s.fakeBlogStore.ListPublished(ctx, tag, offset, limit)
}
