package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shaadicircle/internal/domain"
)

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID       map[string]*domain.User
	byUsername map[string]*domain.User
	byEmail    map[string]*domain.User
	createErr  error
	nextID     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[string]*domain.User),
		byUsername: make(map[string]*domain.User),
		byEmail:    make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) add(u *domain.User) {
	f.byID[u.ID] = u
	f.byUsername[u.Username] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byUsername[u.Username]; ok {
		return domain.ErrDuplicateUser
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateUser
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

// fakeMembershipRepo implements domain.MembershipRepository for tests.
type fakeMembershipRepo struct {
	byCode    map[string]*domain.Membership
	members   map[string][]*domain.ShaadiMember
	createErr error
	nextID    int
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{
		byCode:  make(map[string]*domain.Membership),
		members: make(map[string][]*domain.ShaadiMember),
	}
}

func (f *fakeMembershipRepo) add(m *domain.Membership) {
	f.byCode[m.Code] = m
}

func (f *fakeMembershipRepo) Create(ctx context.Context, m *domain.Membership) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byCode[m.Code]; ok {
		return domain.ErrConflict
	}
	f.nextID++
	m.ID = fmt.Sprintf("mem-%d", f.nextID)
	f.add(m)
	return nil
}

func (f *fakeMembershipRepo) GetByCode(ctx context.Context, code string) (*domain.Membership, error) {
	if m, ok := f.byCode[code]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMembershipRepo) GetByShaadiAndUser(ctx context.Context, shaadiID, userID string) (*domain.Membership, error) {
	for _, m := range f.byCode {
		if m.ShaadiID == shaadiID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMembershipRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Membership, error) {
	var out []*domain.Membership
	for _, m := range f.byCode {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) ListMembersByShaadiID(ctx context.Context, shaadiID string) ([]*domain.ShaadiMember, error) {
	return f.members[shaadiID], nil
}

func (f *fakeMembershipRepo) SetBlocked(ctx context.Context, shaadiID, userID string, blocked bool) error {
	m, err := f.GetByShaadiAndUser(ctx, shaadiID, userID)
	if err != nil {
		return err
	}
	m.Blocked = blocked
	return nil
}

// fakeShaadiRepo implements domain.ShaadiRepository for tests.
type fakeShaadiRepo struct {
	byID       map[string]*domain.Shaadi
	createErrs []error // consumed per Create call; nil entry means success
	deleted    []string
	nextID     int
}

func newFakeShaadiRepo() *fakeShaadiRepo {
	return &fakeShaadiRepo{byID: make(map[string]*domain.Shaadi)}
}

func (f *fakeShaadiRepo) Create(ctx context.Context, s *domain.Shaadi, creator *domain.Membership) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	f.nextID++
	s.ID = fmt.Sprintf("shaadi-%d", f.nextID)
	creator.ShaadiID = s.ID
	creator.ID = fmt.Sprintf("mem-c%d", f.nextID)
	f.byID[s.ID] = s
	return nil
}

func (f *fakeShaadiRepo) GetByID(ctx context.Context, id string) (*domain.Shaadi, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeShaadiRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeInviteRepo implements domain.InviteRepository for tests.
type fakeInviteRepo struct {
	byID     map[string]*domain.Invite
	byCode   map[string]*domain.Invite
	joinErrs []error // consumed per Join call; nil entry means success
	opens    map[string]int
	clicks   map[string]int
	nextID   int
	nextMem  int
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{
		byID:   make(map[string]*domain.Invite),
		byCode: make(map[string]*domain.Invite),
		opens:  make(map[string]int),
		clicks: make(map[string]int),
	}
}

func (f *fakeInviteRepo) add(inv *domain.Invite) {
	f.byID[inv.ID] = inv
	f.byCode[inv.InviteCode] = inv
}

func (f *fakeInviteRepo) Create(ctx context.Context, inv *domain.Invite) error {
	f.nextID++
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.add(inv)
	return nil
}

func (f *fakeInviteRepo) GetByID(ctx context.Context, id string) (*domain.Invite, error) {
	if inv, ok := f.byID[id]; ok {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInviteRepo) GetByCode(ctx context.Context, code string) (*domain.Invite, error) {
	if inv, ok := f.byCode[code]; ok {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInviteRepo) ListByShaadiID(ctx context.Context, shaadiID string) ([]*domain.Invite, error) {
	var out []*domain.Invite
	for _, inv := range f.byID {
		if inv.ShaadiID == shaadiID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInviteRepo) Delete(ctx context.Context, id string) error {
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	delete(f.byCode, inv.InviteCode)
	return nil
}

func (f *fakeInviteRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = domain.InviteStatusSent
	inv.SentAt = &at
	return nil
}

func (f *fakeInviteRepo) MarkDeclined(ctx context.Context, id string, at time.Time) error {
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = domain.InviteStatusDeclined
	inv.DeclinedAt = &at
	return nil
}

func (f *fakeInviteRepo) BumpReminder(ctx context.Context, id string, at time.Time) error {
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.ReminderCount++
	inv.LastReminderSent = &at
	return nil
}

func (f *fakeInviteRepo) Join(ctx context.Context, inviteID, userID string, m *domain.Membership, at time.Time) error {
	if len(f.joinErrs) > 0 {
		err := f.joinErrs[0]
		f.joinErrs = f.joinErrs[1:]
		if err != nil {
			return err
		}
	}
	inv, ok := f.byID[inviteID]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = domain.InviteStatusJoined
	inv.JoinedAt = &at
	inv.JoinedUserID = &userID
	f.nextMem++
	m.ID = fmt.Sprintf("mem-j%d", f.nextMem)
	return nil
}

func (f *fakeInviteRepo) IncrementOpen(ctx context.Context, code string) error {
	f.opens[code]++
	return nil
}

func (f *fakeInviteRepo) IncrementClick(ctx context.Context, code string) error {
	f.clicks[code]++
	return nil
}

// fakePostRepo implements domain.PostRepository for tests.
type fakePostRepo struct {
	byID      map[string]*domain.Post
	updateErr error
	nextID    int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{byID: make(map[string]*domain.Post)}
}

func (f *fakePostRepo) Create(ctx context.Context, p *domain.Post) error {
	f.nextID++
	p.ID = fmt.Sprintf("post-%d", f.nextID)
	f.byID[p.ID] = p
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePostRepo) ListByShaadiID(ctx context.Context, shaadiID string, limit, offset int) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, p := range f.byID {
		if p.ShaadiID == shaadiID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) CountByShaadiID(ctx context.Context, shaadiID string) (int, error) {
	n := 0
	for _, p := range f.byID {
		if p.ShaadiID == shaadiID {
			n++
		}
	}
	return n, nil
}

func (f *fakePostRepo) UpdateContent(ctx context.Context, id, caption string, tags []string, at time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Caption = caption
	p.Tags = tags
	p.UpdatedAt = at
	return nil
}

func (f *fakePostRepo) UpdateLikes(ctx context.Context, id string, likes []string, at time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Likes = likes
	p.UpdatedAt = at
	return nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeCommentRepo implements domain.CommentRepository for tests.
type fakeCommentRepo struct {
	byID   map[string]*domain.Comment
	nextID int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{byID: make(map[string]*domain.Comment)}
}

func (f *fakeCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	f.nextID++
	c.ID = fmt.Sprintf("com-%d", f.nextID)
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCommentRepo) ListByPostID(ctx context.Context, postID string) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range f.byID {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) CountByPostID(ctx context.Context, postID string) (int, error) {
	n := 0
	for _, c := range f.byID {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct{}

func (fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + password, nil
}
func (fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID, username string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	welcomes  []string
	invites   []string
	reminders []string
	sendErr   error
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.welcomes = append(f.welcomes, data.Email)
	return nil
}

func (f *fakeEmailService) SendInvite(ctx context.Context, data *domain.InviteEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.invites = append(f.invites, data.Email)
	return nil
}

func (f *fakeEmailService) SendReminder(ctx context.Context, data *domain.InviteEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.reminders = append(f.reminders, data.Email)
	return nil
}
