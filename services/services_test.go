package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/natblog/blogapi/config"
	"github.com/natblog/blogapi/models"
	"github.com/natblog/blogapi/repository"
	"github.com/natblog/blogapi/utils"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

type testEnv struct {
	auth     *AuthService
	users    *UserService
	blogs    *BlogService
	issuer   *utils.TokenIssuer
	blogRepo repository.BlogRepository
	cache    *memoryCache
}

// memoryCache keeps JSON encoded entries in a map so cache round trips match redis.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, v interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.items[key]
	return ok && json.Unmarshal(b, v) == nil
}

func (c *memoryCache) SetJSON(_ context.Context, key string, v interface{}, _ time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = b
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
}

func (c *memoryCache) InvalidateByPrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := config.OpenDatabase(config.AppConfig{
		DBDriver:    "sqlite",
		DatabaseURI: "file::memory:?_foreign_keys=on",
		LogLevel:    "silent",
	}, models.All()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = config.CloseDatabase(db) })

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	hasher := utils.NewBcryptHasher(bcrypt.MinCost)
	issuer := utils.NewTokenIssuer("test-secret", time.Hour)
	cache := newMemoryCache()

	return &testEnv{
		auth:     NewAuthService(userRepo, hasher, issuer),
		users:    NewUserService(userRepo, hasher, cache),
		blogs:    NewBlogService(blogRepo, cache),
		issuer:   issuer,
		blogRepo: blogRepo,
		cache:    cache,
	}
}

func strPtr(s string) *string { return &s }

func (e *testEnv) register(t *testing.T, role string) (*models.User, Caller) {
	t.Helper()
	name := gofakeit.Name()
	u, err := e.auth.Register(context.Background(), RegisterInput{
		Email:    gofakeit.Email(),
		Username: gofakeit.Username() + gofakeit.DigitN(6),
		Password: "pass1234",
		Name:     &name,
		Role:     role,
	})
	require.NoError(t, err)
	return u, Caller{ID: u.ID, Role: u.Role}
}

func (e *testEnv) blog(t *testing.T, owner Caller) *models.Blog {
	t.Helper()
	b, err := e.blogs.Create(context.Background(), owner, BlogInput{Title: gofakeit.Sentence(4), Content: gofakeit.Paragraph(1, 2, 8, " ")})
	require.NoError(t, err)
	return b
}

func TestDecide(t *testing.T) {
	owner := Caller{ID: 10, Role: models.RoleUser}
	other := Caller{ID: 20, Role: models.RoleUser}
	admin := Caller{ID: 1, Role: models.RoleAdmin}

	for _, tc := range []struct {
		name   string
		action Action
		caller Caller
		want   bool
	}{
		{"owner updates", ActionUpdate, owner, true},
		{"other updates", ActionUpdate, other, false},
		{"admin updates", ActionUpdate, admin, true},
		{"other deletes", ActionDelete, other, false},
		{"admin deletes comment", ActionDeleteComment, admin, true},
		{"owner edits comment", ActionEditComment, owner, true},
		{"owner likes own", ActionLike, owner, false},
		{"other likes", ActionLike, other, true},
		{"admin rates own", ActionRate, Caller{ID: 10, Role: models.RoleAdmin}, false},
		{"other comments", ActionComment, other, true},
		{"user creates user", ActionCreateUser, other, false},
		{"admin creates user", ActionCreateUser, admin, true},
		{"self updates profile", ActionUpdateProfile, owner, true},
		{"other deletes profile", ActionDeleteProfile, other, false},
		{"admin deletes profile", ActionDeleteProfile, admin, true},
		{"anonymous own list", ActionReadOwnList, Caller{}, false},
		{"unknown action", Action("publish"), admin, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.action, owner.ID, tc.caller))
		})
	}
}

func TestBuildView(t *testing.T) {
	blog := models.Blog{ID: 1, Title: "t", UserID: 10}
	ratings := []models.BlogRating{{UserID: 20, Rating: 5}, {UserID: 30, Rating: 3}}
	likes := []models.Like{{UserID: 20}, {UserID: 10}}

	v := BuildView(blog, ratings, likes, 4, Caller{ID: 20, Role: models.RoleUser})
	assert.Equal(t, 8, v.TotalRating)
	assert.Equal(t, 4.0, v.AverageRating)
	assert.True(t, v.IsLikedByMe)
	assert.Equal(t, 2, v.LikesCount)
	assert.Equal(t, 4, v.CommentsCount)
	assert.Equal(t, 2, v.RatingsCount)
	assert.Equal(t, v.LikesCount, v.Count.Likes)

	empty := BuildView(blog, nil, nil, 0, Caller{ID: 20})
	assert.Zero(t, empty.TotalRating)
	assert.Zero(t, empty.AverageRating)
	assert.False(t, empty.IsLikedByMe)

	assert.False(t, BuildView(blog, ratings, likes, 0, Caller{ID: 10, Role: models.RoleUser}).IsLikedByMe, "owner")
	assert.False(t, BuildView(blog, ratings, []models.Like{{UserID: 1}}, 0, Caller{ID: 1, Role: models.RoleAdmin}).IsLikedByMe, "admin")
	assert.False(t, BuildView(blog, ratings, likes, 0, Caller{}).IsLikedByMe, "anonymous")
}

func TestFromStore(t *testing.T) {
	assert.NoError(t, FromStore(nil, "dup"))

	err := FromStore(gorm.ErrDuplicatedKey, "dup")
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "dup", err.Error())
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = FromStore(errors.New("disk on fire"), "dup")
	assert.Equal(t, KindBadRequest, KindOf(err))
	assert.Equal(t, "disk on fire", err.Error())

	forbidden := Forbidden("no")
	assert.Same(t, forbidden, FromStore(forbidden, "dup"))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	in := RegisterInput{Email: "a@b.com", Username: "nat", Password: "pass1234"}

	u, err := env.auth.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEqual(t, "pass1234", u.Password)

	_, err = env.auth.Register(ctx, in)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.EqualError(t, err, "Email or Username already registered")

	_, err = env.auth.Register(ctx, RegisterInput{Email: "x@b.com", Username: "x", Password: "pass1234", Role: "root"})
	assert.Equal(t, KindBadRequest, KindOf(err))

	token, _, err := env.auth.Login(ctx, "nat", "wrong-pass")
	assert.Equal(t, KindBadRequest, KindOf(err))
	assert.EqualError(t, err, "Invalid credentials")
	assert.Empty(t, token)

	_, _, err = env.auth.Login(ctx, "nobody", "pass1234")
	assert.EqualError(t, err, "Invalid credentials")

	token, user, err := env.auth.Login(ctx, "nat", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)
	claims, err := env.issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.CallerID())
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestBlog_ToggleLike(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	_, owner := env.register(t, "")
	_, fan := env.register(t, "")
	b := env.blog(t, owner)

	liked, err := env.blogs.ToggleLike(ctx, fan, b.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	view, err := env.blogs.Get(ctx, fan, b.ID)
	require.NoError(t, err)
	assert.True(t, view.IsLikedByMe)
	assert.Equal(t, 1, view.LikesCount)

	liked, err = env.blogs.ToggleLike(ctx, fan, b.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = env.blogs.ToggleLike(ctx, owner, b.ID)
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = env.blogs.ToggleLike(ctx, Caller{}, b.ID)
	assert.Equal(t, KindBadRequest, KindOf(err))

	_, err = env.blogs.ToggleLike(ctx, fan, b.ID+100)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.EqualError(t, err, "Blog not Found")

	stats, err := env.blogs.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Likes)
}

func TestBlog_UpdateDeleteAccess(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	_, owner := env.register(t, "")
	_, other := env.register(t, "")
	_, admin := env.register(t, models.RoleAdmin)
	b := env.blog(t, owner)

	title := "hijacked"
	_, err := env.blogs.Update(ctx, other, b.ID, BlogUpdate{Title: &title})
	assert.Equal(t, KindForbidden, KindOf(err))

	title = "edited by admin"
	updated, err := env.blogs.Update(ctx, admin, b.ID, BlogUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "edited by admin", updated.Title)
	assert.Equal(t, owner.ID, updated.UserID)

	content := "<p>hello</p><script>alert(1)</script>"
	updated, err = env.blogs.Update(ctx, owner, b.ID, BlogUpdate{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", updated.Content)

	assert.Equal(t, KindForbidden, KindOf(env.blogs.Delete(ctx, other, b.ID)))
	require.NoError(t, env.blogs.Delete(ctx, owner, b.ID))
	_, err = env.blogs.Get(ctx, owner, b.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = env.blogs.Create(ctx, Caller{}, BlogInput{Title: "t", Content: "c"})
	assert.Equal(t, KindBadRequest, KindOf(err))
}

func TestBlog_UpdateRejectsEmptyFields(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	_, owner := env.register(t, "")
	b := env.blog(t, owner)

	for _, tc := range []struct {
		name string
		in   BlogUpdate
		msg  string
	}{
		{"empty title", BlogUpdate{Title: strPtr("")}, "Title cannot be empty"},
		{"blank title", BlogUpdate{Title: strPtr("   ")}, "Title cannot be empty"},
		{"markup only title", BlogUpdate{Title: strPtr("<b></b>")}, "Title cannot be empty"},
		{"script only content", BlogUpdate{Content: strPtr("<script>alert(1)</script>")}, "Content cannot be empty"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.blogs.Update(ctx, owner, b.ID, tc.in)
			assert.Equal(t, KindBadRequest, KindOf(err))
			assert.EqualError(t, err, tc.msg)
		})
	}

	view, err := env.blogs.Get(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Title, view.Title)
	assert.Equal(t, b.Content, view.Content)
}

func TestBlog_IdentityCheckedFirst(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	_, owner := env.register(t, "")
	b := env.blog(t, owner)

	_, err := env.blogs.AddComment(ctx, Caller{}, b.ID, "")
	assert.EqualError(t, err, "userId is required")
	_, err = env.blogs.EditComment(ctx, Caller{}, 1, "")
	assert.EqualError(t, err, "userId is required")
	_, err = env.blogs.Rate(ctx, Caller{}, b.ID, 0)
	assert.EqualError(t, err, "userId is required")
	_, err = env.blogs.ToggleLike(ctx, Caller{}, b.ID)
	assert.EqualError(t, err, "userId is required")
}

func TestBlog_GetIsCachedUntilMutation(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	_, owner := env.register(t, "")
	_, fan := env.register(t, "")
	b := env.blog(t, owner)
	key := blogDetailKey(b.ID)

	view, err := env.blogs.Get(ctx, fan, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Title, view.Title)
	require.True(t, env.cache.has(key))

	// a write that bypasses the service is not seen until the entry is dropped
	_, err = env.blogRepo.Update(ctx, b.ID, map[string]interface{}{"title": "changed underneath"})
	require.NoError(t, err)
	view, err = env.blogs.Get(ctx, fan, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Title, view.Title)
	assert.NotEmpty(t, view.User.Email, "author survives the cache round trip")

	liked, err := env.blogs.ToggleLike(ctx, fan, b.ID)
	require.NoError(t, err)
	require.True(t, liked)
	assert.False(t, env.cache.has(key))

	view, err = env.blogs.Get(ctx, fan, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed underneath", view.Title)
	assert.Equal(t, 1, view.LikesCount)
	assert.True(t, view.IsLikedByMe)

	// cached entries stay caller independent
	ownerView, err := env.blogs.Get(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, ownerView.LikesCount)
	assert.False(t, ownerView.IsLikedByMe)

	_, err = env.blogs.AddComment(ctx, fan, b.ID, "great")
	require.NoError(t, err)
	view, err = env.blogs.Get(ctx, fan, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.CommentsCount)

	_, err = env.blogs.Rate(ctx, fan, b.ID, 4)
	require.NoError(t, err)
	view, err = env.blogs.Get(ctx, fan, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, view.TotalRating)

	title := "edited"
	_, err = env.blogs.Update(ctx, owner, b.ID, BlogUpdate{Title: &title})
	require.NoError(t, err)
	view, err = env.blogs.Get(ctx, fan, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", view.Title)

	// snapshots embed likes and comments of the removed user
	require.NoError(t, env.users.Remove(ctx, fan, fan.ID))
	assert.False(t, env.cache.has(key))
	_, err = env.blogs.Get(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.True(t, env.cache.has(key))

	require.NoError(t, env.blogs.Delete(ctx, owner, b.ID))
	assert.False(t, env.cache.has(key))
	_, err = env.blogs.Get(ctx, owner, b.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestBlog_RateOverwrites(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	_, owner := env.register(t, "")
	_, critic := env.register(t, "")
	b := env.blog(t, owner)

	for _, bad := range []int{0, 6, -1} {
		_, err := env.blogs.Rate(ctx, critic, b.ID, bad)
		assert.Equal(t, KindBadRequest, KindOf(err))
		assert.EqualError(t, err, "Rating must be between 1 and 5")
	}

	first, err := env.blogs.Rate(ctx, critic, b.ID, 5)
	require.NoError(t, err)
	second, err := env.blogs.Rate(ctx, critic, b.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Rating)

	_, err = env.blogs.Rate(ctx, owner, b.ID, 4)
	assert.Equal(t, KindForbidden, KindOf(err))

	view, err := env.blogs.Get(ctx, critic, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.RatingsCount)
	assert.Equal(t, 2, view.TotalRating)
	assert.Equal(t, 2.0, view.AverageRating)
}

func TestBlog_Comments(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	_, owner := env.register(t, "")
	author, commenter := env.register(t, "")
	_, stranger := env.register(t, "")
	_, admin := env.register(t, models.RoleAdmin)
	b := env.blog(t, owner)

	_, err := env.blogs.AddComment(ctx, commenter, b.ID, "   ")
	assert.EqualError(t, err, "Comment is required")
	_, err = env.blogs.AddComment(ctx, owner, b.ID, "self praise")
	assert.Equal(t, KindForbidden, KindOf(err))

	c, err := env.blogs.AddComment(ctx, commenter, b.ID, "nice post")
	require.NoError(t, err)

	list, err := env.blogs.Comments(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, author.Email, list[0].User.Email)
	assert.Equal(t, "nice post", list[0].Content)

	_, err = env.blogs.Comments(ctx, b.ID+100)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = env.blogs.EditComment(ctx, stranger, c.ID, "vandalism")
	assert.Equal(t, KindForbidden, KindOf(err))
	edited, err := env.blogs.EditComment(ctx, commenter, c.ID, "very nice post")
	require.NoError(t, err)
	assert.Equal(t, "very nice post", edited.Content)

	_, err = env.blogs.EditComment(ctx, commenter, c.ID+100, "gone")
	assert.EqualError(t, err, "Comment not Found")

	view, err := env.blogs.Get(ctx, stranger, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.CommentsCount)

	require.NoError(t, env.blogs.DeleteComment(ctx, admin, c.ID))
	assert.Equal(t, KindNotFound, KindOf(env.blogs.DeleteComment(ctx, admin, c.ID)))
}

func TestBlog_ListMineSearch(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	_, alice := env.register(t, "")
	_, bob := env.register(t, "")
	_, err := env.blogs.Create(ctx, alice, BlogInput{Title: "Go tips", Content: "use gofmt"})
	require.NoError(t, err)
	env.blog(t, bob)
	env.blog(t, bob)

	page, err := env.blogs.List(ctx, alice, repository.ListOptions{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.PageSize)

	all, err := env.blogs.List(ctx, alice, repository.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Zero(t, all.PageSize)

	mine, err := env.blogs.Mine(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	_, err = env.blogs.Mine(ctx, Caller{})
	assert.Equal(t, KindBadRequest, KindOf(err))

	found, err := env.blogs.Search(ctx, bob, "GO TIPS")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, alice.ID, found[0].UserID)
	assert.NotNil(t, found[0].User.Name)

	_, err = env.blogs.Search(ctx, bob, "  ")
	assert.EqualError(t, err, "Query is required")
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	target, self := env.register(t, "")
	other, otherCaller := env.register(t, "")
	_, admin := env.register(t, models.RoleAdmin)

	_, err := env.users.Create(ctx, self, RegisterInput{Email: "n@b.com", Username: "n", Password: "pass1234"})
	assert.Equal(t, KindForbidden, KindOf(err))
	created, err := env.users.Create(ctx, admin, RegisterInput{Email: "n@b.com", Username: "n", Password: "pass1234"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, created.Role)

	got, err := env.users.Get(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.Email, got.Email)
	_, err = env.users.Get(ctx, 9999)
	assert.EqualError(t, err, "User with id 9999 not found")

	bio := "hello"
	_, err = env.users.Update(ctx, otherCaller, target.ID, UserUpdate{Bio: &bio})
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = env.users.Update(ctx, self, target.ID, UserUpdate{Email: &other.Email})
	assert.Equal(t, KindConflict, KindOf(err))

	sameEmail := target.Email
	pw := "new-password"
	updated, err := env.users.Update(ctx, self, target.ID, UserUpdate{Email: &sameEmail, Bio: &bio, Password: &pw})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Bio)
	_, _, err = env.auth.Login(ctx, target.Username, "new-password")
	assert.NoError(t, err)

	users, err := env.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	assert.Equal(t, KindForbidden, KindOf(env.users.Remove(ctx, otherCaller, target.ID)))
	assert.Equal(t, KindBadRequest, KindOf(env.users.Remove(ctx, Caller{}, target.ID)))
	require.NoError(t, env.users.Remove(ctx, admin, other.ID))
	require.NoError(t, env.users.Remove(ctx, self, target.ID))
	assert.Equal(t, KindNotFound, KindOf(env.users.Remove(ctx, self, target.ID)))
}

func TestUploadService(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	svc := NewUploadService(LocalImageStore{Dir: dir, BaseURL: "/static/uploads/"}, "properties", 1)
	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	user := Caller{ID: 7}

	url, err := svc.UploadImage(ctx, user, bytes.NewReader(png))
	require.NoError(t, err)
	assert.Regexp(t, `^/static/uploads/properties/[0-9a-f-]{36}\.png$`, url)

	_, err = svc.UploadImage(ctx, user, bytes.NewReader([]byte("just some text")))
	assert.EqualError(t, err, "only image files are allowed")

	big := append(append([]byte{}, png...), make([]byte, 1<<20)...)
	_, err = svc.UploadImage(ctx, user, bytes.NewReader(big))
	assert.Equal(t, KindBadRequest, KindOf(err))

	_, err = svc.UploadImage(ctx, Caller{}, bytes.NewReader(png))
	assert.Equal(t, KindBadRequest, KindOf(err))
}

func TestNewCloudinaryImageStore(t *testing.T) {
	store, err := NewCloudinaryImageStore("demo", "key", "secret")
	require.NoError(t, err)

	var _ ImageStore = store
	var _ ImageStore = LocalImageStore{}
}
