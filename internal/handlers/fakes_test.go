package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/tahmid39/circle-help/backend/internal/models"
	"github.com/tahmid39/circle-help/backend/pkg/cloudinary"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hand-written fakes with function fields: a test sets only the methods it
// expects the handler to call, everything else returns zero values.

type fakePostRepo struct {
	CreatePostFn                func(ctx context.Context, post *models.Post) error
	GetPostByIDFn               func(ctx context.Context, id string) (*models.Post, error)
	GetAllPostsFn               func(ctx context.Context) ([]models.Post, error)
	GetPostsByAuthorFn          func(ctx context.Context, email string, skip, limit int64) ([]models.Post, error)
	DeletePostFn                func(ctx context.Context, id string) error
	ApplyVoteDeltaFn            func(ctx context.Context, id string, upDelta, downDelta int) (*models.Post, error)
	IncrementCommentsCountFn    func(ctx context.Context, id string) error
	DecrementCommentsCountFn    func(ctx context.Context, id string) error
	IncrementViewsFn            func(ctx context.Context, id string) error
	CountByIDsExcludingAuthorFn func(ctx context.Context, ids []primitive.ObjectID, email string) (int64, error)
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	if f.CreatePostFn != nil {
		return f.CreatePostFn(ctx, post)
	}
	return nil
}

func (f *fakePostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if f.GetPostByIDFn != nil {
		return f.GetPostByIDFn(ctx, id)
	}
	return &models.Post{ID: primitive.NewObjectID()}, nil
}

func (f *fakePostRepo) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	if f.GetAllPostsFn != nil {
		return f.GetAllPostsFn(ctx)
	}
	return nil, nil
}

func (f *fakePostRepo) GetPostsByAuthor(ctx context.Context, email string, skip, limit int64) ([]models.Post, error) {
	if f.GetPostsByAuthorFn != nil {
		return f.GetPostsByAuthorFn(ctx, email, skip, limit)
	}
	return nil, nil
}

func (f *fakePostRepo) DeletePost(ctx context.Context, id string) error {
	if f.DeletePostFn != nil {
		return f.DeletePostFn(ctx, id)
	}
	return nil
}

func (f *fakePostRepo) ApplyVoteDelta(ctx context.Context, id string, upDelta, downDelta int) (*models.Post, error) {
	if f.ApplyVoteDeltaFn != nil {
		return f.ApplyVoteDeltaFn(ctx, id, upDelta, downDelta)
	}
	return &models.Post{}, nil
}

func (f *fakePostRepo) IncrementCommentsCount(ctx context.Context, id string) error {
	if f.IncrementCommentsCountFn != nil {
		return f.IncrementCommentsCountFn(ctx, id)
	}
	return nil
}

func (f *fakePostRepo) DecrementCommentsCount(ctx context.Context, id string) error {
	if f.DecrementCommentsCountFn != nil {
		return f.DecrementCommentsCountFn(ctx, id)
	}
	return nil
}

func (f *fakePostRepo) IncrementViews(ctx context.Context, id string) error {
	if f.IncrementViewsFn != nil {
		return f.IncrementViewsFn(ctx, id)
	}
	return nil
}

func (f *fakePostRepo) CountByIDsExcludingAuthor(ctx context.Context, ids []primitive.ObjectID, email string) (int64, error) {
	if f.CountByIDsExcludingAuthorFn != nil {
		return f.CountByIDsExcludingAuthorFn(ctx, ids, email)
	}
	return 0, nil
}

type fakeVoteRepo struct {
	GetVoteFn    func(ctx context.Context, postID, userID string) (*models.Vote, error)
	SetVoteFn    func(ctx context.Context, postID, userID, voteType string) error
	DeleteVoteFn func(ctx context.Context, postID, userID string) error
}

func (f *fakeVoteRepo) GetVote(ctx context.Context, postID, userID string) (*models.Vote, error) {
	if f.GetVoteFn != nil {
		return f.GetVoteFn(ctx, postID, userID)
	}
	return nil, nil
}

func (f *fakeVoteRepo) SetVote(ctx context.Context, postID, userID, voteType string) error {
	if f.SetVoteFn != nil {
		return f.SetVoteFn(ctx, postID, userID, voteType)
	}
	return nil
}

func (f *fakeVoteRepo) DeleteVote(ctx context.Context, postID, userID string) error {
	if f.DeleteVoteFn != nil {
		return f.DeleteVoteFn(ctx, postID, userID)
	}
	return nil
}

type fakeCommentRepo struct {
	CreateCommentFn              func(ctx context.Context, comment *models.Comment) error
	GetCommentByIDFn             func(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByPostIDFn        func(ctx context.Context, postID string) ([]models.Comment, error)
	DeleteCommentFn              func(ctx context.Context, id string) error
	IncrementLikesFn             func(ctx context.Context, id string) error
	CreateReplyFn                func(ctx context.Context, reply *models.Reply) error
	GetRepliesByCommentIDFn      func(ctx context.Context, commentID string) ([]models.Reply, error)
	DistinctPostIDsCommentedByFn func(ctx context.Context, email string) ([]primitive.ObjectID, error)
}

func (f *fakeCommentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	if f.CreateCommentFn != nil {
		return f.CreateCommentFn(ctx, comment)
	}
	return nil
}

func (f *fakeCommentRepo) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	if f.GetCommentByIDFn != nil {
		return f.GetCommentByIDFn(ctx, id)
	}
	return &models.Comment{}, nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	if f.GetCommentsByPostIDFn != nil {
		return f.GetCommentsByPostIDFn(ctx, postID)
	}
	return nil, nil
}

func (f *fakeCommentRepo) DeleteComment(ctx context.Context, id string) error {
	if f.DeleteCommentFn != nil {
		return f.DeleteCommentFn(ctx, id)
	}
	return nil
}

func (f *fakeCommentRepo) IncrementLikes(ctx context.Context, id string) error {
	if f.IncrementLikesFn != nil {
		return f.IncrementLikesFn(ctx, id)
	}
	return nil
}

func (f *fakeCommentRepo) CreateReply(ctx context.Context, reply *models.Reply) error {
	if f.CreateReplyFn != nil {
		return f.CreateReplyFn(ctx, reply)
	}
	return nil
}

func (f *fakeCommentRepo) GetRepliesByCommentID(ctx context.Context, commentID string) ([]models.Reply, error) {
	if f.GetRepliesByCommentIDFn != nil {
		return f.GetRepliesByCommentIDFn(ctx, commentID)
	}
	return nil, nil
}

func (f *fakeCommentRepo) DistinctPostIDsCommentedBy(ctx context.Context, email string) ([]primitive.ObjectID, error) {
	if f.DistinctPostIDsCommentedByFn != nil {
		return f.DistinctPostIDsCommentedByFn(ctx, email)
	}
	return nil, nil
}

type fakeSavedPostRepo struct {
	SavePostFn        func(ctx context.Context, userID, postID string) error
	UnsavePostFn      func(ctx context.Context, userID, postID string) error
	IsPostSavedFn     func(ctx context.Context, userID, postID string) (bool, error)
	GetSavedPostIDsFn func(ctx context.Context, userID string) (map[string]bool, error)
}

func (f *fakeSavedPostRepo) SavePost(ctx context.Context, userID, postID string) error {
	if f.SavePostFn != nil {
		return f.SavePostFn(ctx, userID, postID)
	}
	return nil
}

func (f *fakeSavedPostRepo) UnsavePost(ctx context.Context, userID, postID string) error {
	if f.UnsavePostFn != nil {
		return f.UnsavePostFn(ctx, userID, postID)
	}
	return nil
}

func (f *fakeSavedPostRepo) IsPostSaved(ctx context.Context, userID, postID string) (bool, error) {
	if f.IsPostSavedFn != nil {
		return f.IsPostSavedFn(ctx, userID, postID)
	}
	return false, nil
}

func (f *fakeSavedPostRepo) GetSavedPostIDs(ctx context.Context, userID string) (map[string]bool, error) {
	if f.GetSavedPostIDsFn != nil {
		return f.GetSavedPostIDsFn(ctx, userID)
	}
	return map[string]bool{}, nil
}

type fakeViewedPostRepo struct {
	MarkViewedFn       func(ctx context.Context, userID, postID string) (bool, error)
	GetViewedPostIDsFn func(ctx context.Context, userID string) (map[string]bool, error)
}

func (f *fakeViewedPostRepo) MarkViewed(ctx context.Context, userID, postID string) (bool, error) {
	if f.MarkViewedFn != nil {
		return f.MarkViewedFn(ctx, userID, postID)
	}
	return true, nil
}

func (f *fakeViewedPostRepo) GetViewedPostIDs(ctx context.Context, userID string) (map[string]bool, error) {
	if f.GetViewedPostIDsFn != nil {
		return f.GetViewedPostIDsFn(ctx, userID)
	}
	return map[string]bool{}, nil
}

type fakeMessageRepo struct {
	InsertMessageFn     func(ctx context.Context, msg *models.Message) error
	ListByParticipantFn func(ctx context.Context, email string) ([]models.Message, error)
	ListThreadFn        func(ctx context.Context, me, peer string) ([]models.Message, error)
	MarkThreadReadFn    func(ctx context.Context, me, peer string) (int64, error)
	CountUnreadFn       func(ctx context.Context, email string) (int64, error)
}

func (f *fakeMessageRepo) InsertMessage(ctx context.Context, msg *models.Message) error {
	if f.InsertMessageFn != nil {
		return f.InsertMessageFn(ctx, msg)
	}
	return nil
}

func (f *fakeMessageRepo) ListByParticipant(ctx context.Context, email string) ([]models.Message, error) {
	if f.ListByParticipantFn != nil {
		return f.ListByParticipantFn(ctx, email)
	}
	return nil, nil
}

func (f *fakeMessageRepo) ListThread(ctx context.Context, me, peer string) ([]models.Message, error) {
	if f.ListThreadFn != nil {
		return f.ListThreadFn(ctx, me, peer)
	}
	return nil, nil
}

func (f *fakeMessageRepo) MarkThreadRead(ctx context.Context, me, peer string) (int64, error) {
	if f.MarkThreadReadFn != nil {
		return f.MarkThreadReadFn(ctx, me, peer)
	}
	return 0, nil
}

func (f *fakeMessageRepo) CountUnread(ctx context.Context, email string) (int64, error) {
	if f.CountUnreadFn != nil {
		return f.CountUnreadFn(ctx, email)
	}
	return 0, nil
}

type fakeUserRepo struct {
	CreateUserFn     func(ctx context.Context, user *models.User) error
	UpsertUserFn     func(ctx context.Context, user *models.User) error
	GetUserByIDFn    func(ctx context.Context, id string) (*models.User, error)
	GetUserByEmailFn func(ctx context.Context, email string) (*models.User, error)
	UpdateProfileFn  func(ctx context.Context, id string, fields map[string]interface{}) error
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if f.CreateUserFn != nil {
		return f.CreateUserFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) UpsertUser(ctx context.Context, user *models.User) error {
	if f.UpsertUserFn != nil {
		return f.UpsertUserFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if f.GetUserByIDFn != nil {
		return f.GetUserByIDFn(ctx, id)
	}
	return &models.User{}, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.GetUserByEmailFn != nil {
		return f.GetUserByEmailFn(ctx, email)
	}
	return &models.User{Email: email}, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	if f.UpdateProfileFn != nil {
		return f.UpdateProfileFn(ctx, id, fields)
	}
	return nil
}

type fakePaymentRepo struct {
	ListPaymentsFn func(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
}

func (f *fakePaymentRepo) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	if f.ListPaymentsFn != nil {
		return f.ListPaymentsFn(ctx, filter)
	}
	return nil, nil
}

type fakeUploader struct {
	UploadImageFn func(ctx context.Context, r io.Reader) (*cloudinary.UploadResult, error)
}

func (f *fakeUploader) UploadImage(ctx context.Context, r io.Reader) (*cloudinary.UploadResult, error) {
	if f.UploadImageFn != nil {
		return f.UploadImageFn(ctx, r)
	}
	return &cloudinary.UploadResult{}, nil
}

var testUser = models.AuthUser{
	UID:         "uid-1",
	Email:       "alice@example.com",
	DisplayName: "Alice",
}

// newTestContext builds an Echo context carrying an authenticated user, the
// way the auth middleware would leave it.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("authUser", testUser)
	return c, rec
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}
