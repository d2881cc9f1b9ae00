package job

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LuWes17/infomatik-api/internal/application/file"
	"github.com/LuWes17/infomatik-api/internal/domain"
)

type mockJobStore struct{ mock.Mock }

func (m *mockJobStore) Put(ctx context.Context, j *domain.Job) error {
	return m.Called(ctx, j).Error(0)
}
func (m *mockJobStore) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if j, _ := args.Get(0).(*domain.Job); j != nil {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockJobStore) List(ctx context.Context, status string) ([]domain.Job, error) {
	args := m.Called(ctx, status)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}
func (m *mockJobStore) Update(ctx context.Context, jobID string, updates map[string]interface{}) error {
	return m.Called(ctx, jobID, updates).Error(0)
}
func (m *mockJobStore) Delete(ctx context.Context, jobID string) error {
	return m.Called(ctx, jobID).Error(0)
}

type mockApplicationStore struct{ mock.Mock }

func (m *mockApplicationStore) Put(ctx context.Context, a *domain.JobApplication) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockApplicationStore) Get(ctx context.Context, applicationID string) (*domain.JobApplication, error) {
	args := m.Called(ctx, applicationID)
	if a, _ := args.Get(0).(*domain.JobApplication); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockApplicationStore) ListByJob(ctx context.Context, jobID string) ([]domain.JobApplication, error) {
	args := m.Called(ctx, jobID)
	apps, _ := args.Get(0).([]domain.JobApplication)
	return apps, args.Error(1)
}
func (m *mockApplicationStore) ListByApplicant(ctx context.Context, applicantID string) ([]domain.JobApplication, error) {
	args := m.Called(ctx, applicantID)
	apps, _ := args.Get(0).([]domain.JobApplication)
	return apps, args.Error(1)
}
func (m *mockApplicationStore) Update(ctx context.Context, applicationID string, updates map[string]interface{}) error {
	return m.Called(ctx, applicationID, updates).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFileService struct{ mock.Mock }

func (m *mockFileService) Upload(ctx context.Context, input file.UploadInput) (*domain.File, error) {
	args := m.Called(ctx, input)
	if f, _ := args.Get(0).(*domain.File); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockFileService) DownloadURL(ctx context.Context, fileID, requesterID string, isAdmin bool) (*domain.File, string, error) {
	args := m.Called(ctx, fileID, requesterID, isAdmin)
	f, _ := args.Get(0).(*domain.File)
	return f, args.String(1), args.Error(2)
}
func (m *mockFileService) Download(ctx context.Context, fileID, requesterID string, isAdmin bool) (io.ReadCloser, *domain.File, error) {
	args := m.Called(ctx, fileID, requesterID, isAdmin)
	rc, _ := args.Get(0).(io.ReadCloser)
	f, _ := args.Get(1).(*domain.File)
	return rc, f, args.Error(2)
}
func (m *mockFileService) Delete(ctx context.Context, fileID, requesterID string, isAdmin bool) error {
	return m.Called(ctx, fileID, requesterID, isAdmin).Error(0)
}

type fixture struct {
	jobs  *mockJobStore
	apps  *mockApplicationStore
	users *mockUserStore
	files *mockFileService
	svc   Service
}

func newFixture() *fixture {
	f := &fixture{
		jobs:  &mockJobStore{},
		apps:  &mockApplicationStore{},
		users: &mockUserStore{},
		files: &mockFileService{},
	}
	f.svc = NewService(ServiceDeps{
		JobRepo:         f.jobs,
		ApplicationRepo: f.apps,
		UserRepo:        f.users,
		Files:           f.files,
	})
	return f
}

func TestGetOpenHidesClosedPosting(t *testing.T) {
	f := newFixture()
	f.jobs.On("Get", mock.Anything, "j1").
		Return(&domain.Job{JobID: "j1", Status: domain.JobClosed}, nil)

	_, err := f.svc.GetOpen(context.Background(), "j1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply(t *testing.T) {
	f := newFixture()
	f.jobs.On("Get", mock.Anything, "j1").
		Return(&domain.Job{JobID: "j1", Status: domain.JobOpen}, nil)
	f.apps.On("ListByApplicant", mock.Anything, "u1").Return(nil, nil)
	f.users.On("Get", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1", FirstName: "Juan", LastName: "Dela Cruz", ContactNumber: "09171234567"}, nil)
	f.files.On("Upload", mock.Anything, mock.Anything).
		Return(&domain.File{FileID: "f1"}, nil)
	f.apps.On("Put", mock.Anything, mock.Anything).Return(nil)

	a, err := f.svc.Apply(context.Background(), ApplyInput{
		JobID:       "j1",
		ApplicantID: "u1",
		Resume:      strings.NewReader("resume bytes"),
		ResumeName:  "resume.pdf",
		ResumeSize:  12,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, a.Status)
	assert.Equal(t, "f1", a.ResumeFileID)
	assert.Equal(t, "Juan Dela Cruz", a.FullName)
}

func TestApplyClosedJob(t *testing.T) {
	f := newFixture()
	f.jobs.On("Get", mock.Anything, "j1").
		Return(&domain.Job{JobID: "j1", Status: domain.JobClosed}, nil)

	_, err := f.svc.Apply(context.Background(), ApplyInput{JobID: "j1", ApplicantID: "u1"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	f.files.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestApplyTwiceSamePosting(t *testing.T) {
	f := newFixture()
	f.jobs.On("Get", mock.Anything, "j1").
		Return(&domain.Job{JobID: "j1", Status: domain.JobOpen}, nil)
	f.apps.On("ListByApplicant", mock.Anything, "u1").
		Return([]domain.JobApplication{{ApplicationID: "a1", JobID: "j1"}}, nil)

	_, err := f.svc.Apply(context.Background(), ApplyInput{JobID: "j1", ApplicantID: "u1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	f.apps.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestReview(t *testing.T) {
	f := newFixture()
	f.apps.On("Get", mock.Anything, "a1").
		Return(&domain.JobApplication{ApplicationID: "a1", Status: domain.ApplicationPending}, nil).Once()
	f.apps.On("Update", mock.Anything, "a1", map[string]interface{}{
		"status":  domain.ApplicationInterview,
		"remarks": "schedule on Monday",
	}).Return(nil)
	f.apps.On("Get", mock.Anything, "a1").
		Return(&domain.JobApplication{ApplicationID: "a1", Status: domain.ApplicationInterview}, nil)

	a, err := f.svc.Review(context.Background(), "a1", domain.ReviewApplicationRequest{
		Status:  domain.ApplicationInterview,
		Remarks: "schedule on Monday",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationInterview, a.Status)
	f.apps.AssertExpectations(t)
}
