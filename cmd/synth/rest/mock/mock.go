package mock

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/synthgen/synthctl/api-types/admin"
	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/api-types/datasets"
	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/api-types/notifications"
	"github.com/synthgen/synthctl/api-types/optimization"
	"github.com/synthgen/synthctl/api-types/requests"
	"github.com/synthgen/synthctl/api-types/stats"
	"github.com/synthgen/synthctl/cmd/synth/rest"
)

type LoginArgs struct {
	Email    string
	Password string
}

type UpdateRequestArgs struct {
	RequestId int
	Update    requests.Update
}

type GenerateWithOptimizationArgs struct {
	RequestId int
	Opt       requests.OptimizedGenerate
}

type DownloadRequestDataArgs struct {
	RequestId int
	Format    generation.FileFormat
	Token     string
}

type GetGenerationDownloadArgs struct {
	RequestId int
	Format    generation.FileFormat
}

type UploadDatasetArgs struct {
	Filename string
	Content  io.Reader
}

type UpdateDatasetArgs struct {
	DatasetId int
	Update    datasets.Update
}

type SetUserActiveArgs struct {
	UserId int
	Active bool
}

type SetUserRoleArgs struct {
	UserId int
	Role   auth.Role
}

type RejectRequestArgs struct {
	RequestId int
	Reason    string
}

func New(t *testing.T) *MockClient {
	return &MockClient{t: t}
}

// MockClient is a rest.SynthClient which calls functions in Impl.
//
// Calling a method without Impl fails the test.
type MockClient struct {
	t  *testing.T
	mu sync.Mutex

	Impl struct {
		Login                     func(ctx context.Context, email string, password string) (auth.LoginResponse, error)
		Signup                    func(ctx context.Context, req auth.SignupRequest) (auth.SignupResponse, error)
		GetProfile                func(ctx context.Context) (auth.Profile, error)
		UpdateProfile             func(ctx context.Context, update auth.ProfileUpdate) (auth.Profile, error)
		ListRequests              func(ctx context.Context) ([]requests.DataRequest, error)
		CreateRequest             func(ctx context.Context, create requests.Create) (requests.DataRequest, error)
		GetRequest                func(ctx context.Context, requestId int) (requests.DataRequest, error)
		UpdateRequest             func(ctx context.Context, requestId int, update requests.Update) (requests.DataRequest, error)
		DeleteRequest             func(ctx context.Context, requestId int) error
		Generate                  func(ctx context.Context, requestId int) (requests.GenerateResponse, error)
		GenerateWithOptimization  func(ctx context.Context, requestId int, opt requests.OptimizedGenerate) (requests.GenerateResponse, error)
		GetDownloadToken          func(ctx context.Context, requestId int) (requests.DownloadToken, error)
		DownloadRequestData       func(ctx context.Context, requestId int, format generation.FileFormat, token string, handler func(r io.Reader, size int64) error) error
		StartGeneration           func(ctx context.Context, config generation.ConfigRequest) (generation.StartResponse, error)
		ListGenerations           func(ctx context.Context, query generation.ListQuery) (generation.ListResponse, error)
		GetGenerationStatus       func(ctx context.Context, requestId int) (generation.StatusResponse, error)
		GetGenerationDownload     func(ctx context.Context, requestId int, format generation.FileFormat) (generation.DownloadResponse, error)
		CancelGeneration          func(ctx context.Context, requestId int) (generation.CancelResponse, error)
		GetGenerationOptimization func(ctx context.Context, requestId int) (optimization.Results, error)
		Fetch                     func(ctx context.Context, url string, handler func(r io.Reader, size int64) error) error
		CreateOptimization        func(ctx context.Context, config optimization.ConfigCreate) (optimization.Config, error)
		GetOptimization           func(ctx context.Context, configId int) (optimization.Config, error)
		StartOptimization         func(ctx context.Context, configId int) (optimization.StartResponse, error)
		GetOptimizationTrials     func(ctx context.Context, configId int) ([]optimization.Trial, error)
		GetBestParameters         func(ctx context.Context, configId int) (optimization.Best, error)
		StopOptimization          func(ctx context.Context, configId int) error
		ListDatasets              func(ctx context.Context) ([]datasets.Dataset, error)
		CheckFilename             func(ctx context.Context, filename string) (datasets.FilenameCheck, error)
		UploadDataset             func(ctx context.Context, filename string, content io.Reader) (datasets.UploadResponse, error)
		UpdateDataset             func(ctx context.Context, datasetId int, update datasets.Update) (datasets.UpdateResponse, error)
		DeleteDataset             func(ctx context.Context, datasetId int) error
		DownloadDataset           func(ctx context.Context, datasetId int, handler func(r io.Reader, size int64) error) error
		ListUsers                 func(ctx context.Context, query admin.UserQuery) ([]auth.User, error)
		GetUser                   func(ctx context.Context, userId int) (auth.User, error)
		GetUserProfile            func(ctx context.Context, userId int) (auth.Profile, error)
		SetUserActive             func(ctx context.Context, userId int, active bool) (auth.User, error)
		SetUserRole               func(ctx context.Context, userId int, role auth.Role) (auth.User, error)
		DeleteUser                func(ctx context.Context, userId int) error
		ListAllRequests           func(ctx context.Context, query admin.RequestQuery) ([]requests.DataRequest, error)
		GetAnyRequest             func(ctx context.Context, requestId int) (requests.DataRequest, error)
		ApproveRequest            func(ctx context.Context, requestId int) (requests.DataRequest, error)
		RejectRequest             func(ctx context.Context, requestId int, reason string) (requests.DataRequest, error)
		DeleteAnyRequest          func(ctx context.Context, requestId int) error
		ListActionLogs            func(ctx context.Context, page admin.Page) ([]admin.ActionLog, error)
		GetActionLog              func(ctx context.Context, logId int) (admin.ActionLog, error)
		ListNotifications         func(ctx context.Context) (notifications.List, error)
		MarkNotificationRead      func(ctx context.Context, notificationId int) error
		MarkAllNotificationsRead  func(ctx context.Context) error
		GetStats                  func(ctx context.Context, kind stats.Kind) (stats.Document, error)
		ExportStats               func(ctx context.Context, format stats.ExportFormat, handler func(r io.Reader, size int64) error) error
		SetToken                  func(token string)
	}
	Calls struct {
		Login                     []LoginArgs
		Signup                    []auth.SignupRequest
		GetProfile                int
		UpdateProfile             []auth.ProfileUpdate
		ListRequests              int
		CreateRequest             []requests.Create
		GetRequest                []int
		UpdateRequest             []UpdateRequestArgs
		DeleteRequest             []int
		Generate                  []int
		GenerateWithOptimization  []GenerateWithOptimizationArgs
		GetDownloadToken          []int
		DownloadRequestData       []DownloadRequestDataArgs
		StartGeneration           []generation.ConfigRequest
		ListGenerations           []generation.ListQuery
		GetGenerationStatus       []int
		GetGenerationDownload     []GetGenerationDownloadArgs
		CancelGeneration          []int
		GetGenerationOptimization []int
		Fetch                     []string
		CreateOptimization        []optimization.ConfigCreate
		GetOptimization           []int
		StartOptimization         []int
		GetOptimizationTrials     []int
		GetBestParameters         []int
		StopOptimization          []int
		ListDatasets              int
		CheckFilename             []string
		UploadDataset             []UploadDatasetArgs
		UpdateDataset             []UpdateDatasetArgs
		DeleteDataset             []int
		DownloadDataset           []int
		ListUsers                 []admin.UserQuery
		GetUser                   []int
		GetUserProfile            []int
		SetUserActive             []SetUserActiveArgs
		SetUserRole               []SetUserRoleArgs
		DeleteUser                []int
		ListAllRequests           []admin.RequestQuery
		GetAnyRequest             []int
		ApproveRequest            []int
		RejectRequest             []RejectRequestArgs
		DeleteAnyRequest          []int
		ListActionLogs            []admin.Page
		GetActionLog              []int
		ListNotifications         int
		MarkNotificationRead      []int
		MarkAllNotificationsRead  int
		GetStats                  []stats.Kind
		ExportStats               []stats.ExportFormat
		SetToken                  []string
	}
}

var _ rest.SynthClient = &MockClient{}

func (m *MockClient) Login(ctx context.Context, email string, password string) (auth.LoginResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.Login = append(m.Calls.Login, LoginArgs{Email: email, Password: password})
	impl := m.Impl.Login
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("Login is not ready to be called")
	}
	return impl(ctx, email, password)
}

func (m *MockClient) Signup(ctx context.Context, req auth.SignupRequest) (auth.SignupResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.Signup = append(m.Calls.Signup, req)
	impl := m.Impl.Signup
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("Signup is not ready to be called")
	}
	return impl(ctx, req)
}

func (m *MockClient) GetProfile(ctx context.Context) (auth.Profile, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetProfile += 1
	impl := m.Impl.GetProfile
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetProfile is not ready to be called")
	}
	return impl(ctx)
}

func (m *MockClient) UpdateProfile(ctx context.Context, update auth.ProfileUpdate) (auth.Profile, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.UpdateProfile = append(m.Calls.UpdateProfile, update)
	impl := m.Impl.UpdateProfile
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("UpdateProfile is not ready to be called")
	}
	return impl(ctx, update)
}

func (m *MockClient) ListRequests(ctx context.Context) ([]requests.DataRequest, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.ListRequests += 1
	impl := m.Impl.ListRequests
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("ListRequests is not ready to be called")
	}
	return impl(ctx)
}

func (m *MockClient) CreateRequest(ctx context.Context, create requests.Create) (requests.DataRequest, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.CreateRequest = append(m.Calls.CreateRequest, create)
	impl := m.Impl.CreateRequest
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("CreateRequest is not ready to be called")
	}
	return impl(ctx, create)
}

func (m *MockClient) GetRequest(ctx context.Context, requestId int) (requests.DataRequest, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetRequest = append(m.Calls.GetRequest, requestId)
	impl := m.Impl.GetRequest
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetRequest is not ready to be called")
	}
	return impl(ctx, requestId)
}

func (m *MockClient) UpdateRequest(ctx context.Context, requestId int, update requests.Update) (requests.DataRequest, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.UpdateRequest = append(m.Calls.UpdateRequest, UpdateRequestArgs{RequestId: requestId, Update: update})
	impl := m.Impl.UpdateRequest
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("UpdateRequest is not ready to be called")
	}
	return impl(ctx, requestId, update)
}

func (m *MockClient) DeleteRequest(ctx context.Context, requestId int) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteRequest = append(m.Calls.DeleteRequest, requestId)
	impl := m.Impl.DeleteRequest
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("DeleteRequest is not ready to be called")
	}
	return impl(ctx, requestId)
}

func (m *MockClient) Generate(ctx context.Context, requestId int) (requests.GenerateResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.Generate = append(m.Calls.Generate, requestId)
	impl := m.Impl.Generate
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("Generate is not ready to be called")
	}
	return impl(ctx, requestId)
}

func (m *MockClient) GenerateWithOptimization(ctx context.Context, requestId int, opt requests.OptimizedGenerate) (requests.GenerateResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GenerateWithOptimization = append(m.Calls.GenerateWithOptimization, GenerateWithOptimizationArgs{RequestId: requestId, Opt: opt})
	impl := m.Impl.GenerateWithOptimization
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GenerateWithOptimization is not ready to be called")
	}
	return impl(ctx, requestId, opt)
}

func (m *MockClient) GetDownloadToken(ctx context.Context, requestId int) (requests.DownloadToken, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetDownloadToken = append(m.Calls.GetDownloadToken, requestId)
	impl := m.Impl.GetDownloadToken
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetDownloadToken is not ready to be called")
	}
	return impl(ctx, requestId)
}

func (m *MockClient) DownloadRequestData(ctx context.Context, requestId int, format generation.FileFormat, token string, handler func(r io.Reader, size int64) error) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DownloadRequestData = append(m.Calls.DownloadRequestData, DownloadRequestDataArgs{RequestId: requestId, Format: format, Token: token})
	impl := m.Impl.DownloadRequestData
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("DownloadRequestData is not ready to be called")
	}
	return impl(ctx, requestId, format, token, handler)
}

func (m *MockClient) StartGeneration(ctx context.Context, config generation.ConfigRequest) (generation.StartResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.StartGeneration = append(m.Calls.StartGeneration, config)
	impl := m.Impl.StartGeneration
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("StartGeneration is not ready to be called")
	}
	return impl(ctx, config)
}

func (m *MockClient) ListGenerations(ctx context.Context, query generation.ListQuery) (generation.ListResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.ListGenerations = append(m.Calls.ListGenerations, query)
	impl := m.Impl.ListGenerations
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("ListGenerations is not ready to be called")
	}
	return impl(ctx, query)
}

func (m *MockClient) GetGenerationStatus(ctx context.Context, requestId int) (generation.StatusResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetGenerationStatus = append(m.Calls.GetGenerationStatus, requestId)
	impl := m.Impl.GetGenerationStatus
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetGenerationStatus is not ready to be called")
	}
	return impl(ctx, requestId)
}

func (m *MockClient) GetGenerationDownload(ctx context.Context, requestId int, format generation.FileFormat) (generation.DownloadResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetGenerationDownload = append(m.Calls.GetGenerationDownload, GetGenerationDownloadArgs{RequestId: requestId, Format: format})
	impl := m.Impl.GetGenerationDownload
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetGenerationDownload is not ready to be called")
	}
	return impl(ctx, requestId, format)
}

func (m *MockClient) CancelGeneration(ctx context.Context, requestId int) (generation.CancelResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.CancelGeneration = append(m.Calls.CancelGeneration, requestId)
	impl := m.Impl.CancelGeneration
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("CancelGeneration is not ready to be called")
	}
	return impl(ctx, requestId)
}

func (m *MockClient) GetGenerationOptimization(ctx context.Context, requestId int) (optimization.Results, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetGenerationOptimization = append(m.Calls.GetGenerationOptimization, requestId)
	impl := m.Impl.GetGenerationOptimization
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetGenerationOptimization is not ready to be called")
	}
	return impl(ctx, requestId)
}

func (m *MockClient) Fetch(ctx context.Context, url string, handler func(r io.Reader, size int64) error) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.Fetch = append(m.Calls.Fetch, url)
	impl := m.Impl.Fetch
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("Fetch is not ready to be called")
	}
	return impl(ctx, url, handler)
}

func (m *MockClient) CreateOptimization(ctx context.Context, config optimization.ConfigCreate) (optimization.Config, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.CreateOptimization = append(m.Calls.CreateOptimization, config)
	impl := m.Impl.CreateOptimization
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("CreateOptimization is not ready to be called")
	}
	return impl(ctx, config)
}

func (m *MockClient) GetOptimization(ctx context.Context, configId int) (optimization.Config, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetOptimization = append(m.Calls.GetOptimization, configId)
	impl := m.Impl.GetOptimization
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetOptimization is not ready to be called")
	}
	return impl(ctx, configId)
}

func (m *MockClient) StartOptimization(ctx context.Context, configId int) (optimization.StartResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.StartOptimization = append(m.Calls.StartOptimization, configId)
	impl := m.Impl.StartOptimization
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("StartOptimization is not ready to be called")
	}
	return impl(ctx, configId)
}

func (m *MockClient) GetOptimizationTrials(ctx context.Context, configId int) ([]optimization.Trial, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetOptimizationTrials = append(m.Calls.GetOptimizationTrials, configId)
	impl := m.Impl.GetOptimizationTrials
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetOptimizationTrials is not ready to be called")
	}
	return impl(ctx, configId)
}

func (m *MockClient) GetBestParameters(ctx context.Context, configId int) (optimization.Best, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetBestParameters = append(m.Calls.GetBestParameters, configId)
	impl := m.Impl.GetBestParameters
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetBestParameters is not ready to be called")
	}
	return impl(ctx, configId)
}

func (m *MockClient) StopOptimization(ctx context.Context, configId int) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.StopOptimization = append(m.Calls.StopOptimization, configId)
	impl := m.Impl.StopOptimization
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("StopOptimization is not ready to be called")
	}
	return impl(ctx, configId)
}

func (m *MockClient) ListDatasets(ctx context.Context) ([]datasets.Dataset, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.ListDatasets += 1
	impl := m.Impl.ListDatasets
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("ListDatasets is not ready to be called")
	}
	return impl(ctx)
}

func (m *MockClient) CheckFilename(ctx context.Context, filename string) (datasets.FilenameCheck, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.CheckFilename = append(m.Calls.CheckFilename, filename)
	impl := m.Impl.CheckFilename
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("CheckFilename is not ready to be called")
	}
	return impl(ctx, filename)
}

func (m *MockClient) UploadDataset(ctx context.Context, filename string, content io.Reader) (datasets.UploadResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.UploadDataset = append(m.Calls.UploadDataset, UploadDatasetArgs{Filename: filename, Content: content})
	impl := m.Impl.UploadDataset
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("UploadDataset is not ready to be called")
	}
	return impl(ctx, filename, content)
}

func (m *MockClient) UpdateDataset(ctx context.Context, datasetId int, update datasets.Update) (datasets.UpdateResponse, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.UpdateDataset = append(m.Calls.UpdateDataset, UpdateDatasetArgs{DatasetId: datasetId, Update: update})
	impl := m.Impl.UpdateDataset
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("UpdateDataset is not ready to be called")
	}
	return impl(ctx, datasetId, update)
}

func (m *MockClient) DeleteDataset(ctx context.Context, datasetId int) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteDataset = append(m.Calls.DeleteDataset, datasetId)
	impl := m.Impl.DeleteDataset
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("DeleteDataset is not ready to be called")
	}
	return impl(ctx, datasetId)
}

func (m *MockClient) DownloadDataset(ctx context.Context, datasetId int, handler func(r io.Reader, size int64) error) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DownloadDataset = append(m.Calls.DownloadDataset, datasetId)
	impl := m.Impl.DownloadDataset
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("DownloadDataset is not ready to be called")
	}
	return impl(ctx, datasetId, handler)
}

func (m *MockClient) ListUsers(ctx context.Context, query admin.UserQuery) ([]auth.User, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.ListUsers = append(m.Calls.ListUsers, query)
	impl := m.Impl.ListUsers
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("ListUsers is not ready to be called")
	}
	return impl(ctx, query)
}

func (m *MockClient) GetUser(ctx context.Context, userId int) (auth.User, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetUser = append(m.Calls.GetUser, userId)
	impl := m.Impl.GetUser
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetUser is not ready to be called")
	}
	return impl(ctx, userId)
}

func (m *MockClient) GetUserProfile(ctx context.Context, userId int) (auth.Profile, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetUserProfile = append(m.Calls.GetUserProfile, userId)
	impl := m.Impl.GetUserProfile
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetUserProfile is not ready to be called")
	}
	return impl(ctx, userId)
}

func (m *MockClient) SetUserActive(ctx context.Context, userId int, active bool) (auth.User, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.SetUserActive = append(m.Calls.SetUserActive, SetUserActiveArgs{UserId: userId, Active: active})
	impl := m.Impl.SetUserActive
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("SetUserActive is not ready to be called")
	}
	return impl(ctx, userId, active)
}

func (m *MockClient) SetUserRole(ctx context.Context, userId int, role auth.Role) (auth.User, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.SetUserRole = append(m.Calls.SetUserRole, SetUserRoleArgs{UserId: userId, Role: role})
	impl := m.Impl.SetUserRole
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("SetUserRole is not ready to be called")
	}
	return impl(ctx, userId, role)
}

func (m *MockClient) DeleteUser(ctx context.Context, userId int) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteUser = append(m.Calls.DeleteUser, userId)
	impl := m.Impl.DeleteUser
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("DeleteUser is not ready to be called")
	}
	return impl(ctx, userId)
}

func (m *MockClient) ListAllRequests(ctx context.Context, query admin.RequestQuery) ([]requests.DataRequest, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.ListAllRequests = append(m.Calls.ListAllRequests, query)
	impl := m.Impl.ListAllRequests
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("ListAllRequests is not ready to be called")
	}
	return impl(ctx, query)
}

func (m *MockClient) GetAnyRequest(ctx context.Context, requestId int) (requests.DataRequest, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetAnyRequest = append(m.Calls.GetAnyRequest, requestId)
	impl := m.Impl.GetAnyRequest
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetAnyRequest is not ready to be called")
	}
	return impl(ctx, requestId)
}

func (m *MockClient) ApproveRequest(ctx context.Context, requestId int) (requests.DataRequest, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.ApproveRequest = append(m.Calls.ApproveRequest, requestId)
	impl := m.Impl.ApproveRequest
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("ApproveRequest is not ready to be called")
	}
	return impl(ctx, requestId)
}

func (m *MockClient) RejectRequest(ctx context.Context, requestId int, reason string) (requests.DataRequest, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.RejectRequest = append(m.Calls.RejectRequest, RejectRequestArgs{RequestId: requestId, Reason: reason})
	impl := m.Impl.RejectRequest
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("RejectRequest is not ready to be called")
	}
	return impl(ctx, requestId, reason)
}

func (m *MockClient) DeleteAnyRequest(ctx context.Context, requestId int) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteAnyRequest = append(m.Calls.DeleteAnyRequest, requestId)
	impl := m.Impl.DeleteAnyRequest
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("DeleteAnyRequest is not ready to be called")
	}
	return impl(ctx, requestId)
}

func (m *MockClient) ListActionLogs(ctx context.Context, page admin.Page) ([]admin.ActionLog, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.ListActionLogs = append(m.Calls.ListActionLogs, page)
	impl := m.Impl.ListActionLogs
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("ListActionLogs is not ready to be called")
	}
	return impl(ctx, page)
}

func (m *MockClient) GetActionLog(ctx context.Context, logId int) (admin.ActionLog, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetActionLog = append(m.Calls.GetActionLog, logId)
	impl := m.Impl.GetActionLog
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetActionLog is not ready to be called")
	}
	return impl(ctx, logId)
}

func (m *MockClient) ListNotifications(ctx context.Context) (notifications.List, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.ListNotifications += 1
	impl := m.Impl.ListNotifications
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("ListNotifications is not ready to be called")
	}
	return impl(ctx)
}

func (m *MockClient) MarkNotificationRead(ctx context.Context, notificationId int) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.MarkNotificationRead = append(m.Calls.MarkNotificationRead, notificationId)
	impl := m.Impl.MarkNotificationRead
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("MarkNotificationRead is not ready to be called")
	}
	return impl(ctx, notificationId)
}

func (m *MockClient) MarkAllNotificationsRead(ctx context.Context) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.MarkAllNotificationsRead += 1
	impl := m.Impl.MarkAllNotificationsRead
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("MarkAllNotificationsRead is not ready to be called")
	}
	return impl(ctx)
}

func (m *MockClient) GetStats(ctx context.Context, kind stats.Kind) (stats.Document, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetStats = append(m.Calls.GetStats, kind)
	impl := m.Impl.GetStats
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("GetStats is not ready to be called")
	}
	return impl(ctx, kind)
}

func (m *MockClient) ExportStats(ctx context.Context, format stats.ExportFormat, handler func(r io.Reader, size int64) error) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.ExportStats = append(m.Calls.ExportStats, format)
	impl := m.Impl.ExportStats
	m.mu.Unlock()

	if impl == nil {
		m.t.Fatal("ExportStats is not ready to be called")
	}
	return impl(ctx, format, handler)
}

func (m *MockClient) SetToken(token string) {
	m.mu.Lock()
	m.Calls.SetToken = append(m.Calls.SetToken, token)
	impl := m.Impl.SetToken
	m.mu.Unlock()

	if impl != nil {
		impl(token)
	}
}
