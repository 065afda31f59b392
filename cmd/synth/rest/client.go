package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/synthgen/synthctl/api-types/admin"
	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/api-types/datasets"
	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/api-types/notifications"
	"github.com/synthgen/synthctl/api-types/optimization"
	"github.com/synthgen/synthctl/api-types/requests"
	"github.com/synthgen/synthctl/api-types/stats"
	sprof "github.com/synthgen/synthctl/cmd/synth/config/profiles"
	cerr "github.com/synthgen/synthctl/cmd/synth/errors"
)

type AuthClient interface {
	// Login exchanges email and password with a bearer token.
	//
	// The client keeps using the token after success.
	Login(ctx context.Context, email, password string) (auth.LoginResponse, error)

	Signup(ctx context.Context, req auth.SignupRequest) (auth.SignupResponse, error)

	GetProfile(ctx context.Context) (auth.Profile, error)

	UpdateProfile(ctx context.Context, update auth.ProfileUpdate) (auth.Profile, error)
}

type RequestClient interface {
	ListRequests(ctx context.Context) ([]requests.DataRequest, error)

	CreateRequest(ctx context.Context, create requests.Create) (requests.DataRequest, error)

	GetRequest(ctx context.Context, requestId int) (requests.DataRequest, error)

	UpdateRequest(ctx context.Context, requestId int, update requests.Update) (requests.DataRequest, error)

	DeleteRequest(ctx context.Context, requestId int) error

	// Generate starts generation of an approved request.
	Generate(ctx context.Context, requestId int) (requests.GenerateResponse, error)

	// GenerateWithOptimization starts generation of an approved request,
	// searching hyperparameters before training.
	GenerateWithOptimization(
		ctx context.Context, requestId int, opt requests.OptimizedGenerate,
	) (requests.GenerateResponse, error)

	GetDownloadToken(ctx context.Context, requestId int) (requests.DownloadToken, error)

	// DownloadRequestData streams generated data of the request.
	//
	// # Args
	//
	// - format: file format. empty for server default.
	//
	// - token: download token. empty to use bearer token instead.
	//
	// - handler: called with the body and its size (-1 if unknown).
	DownloadRequestData(
		ctx context.Context, requestId int, format generation.FileFormat, token string,
		handler func(r io.Reader, size int64) error,
	) error
}

type GenerationClient interface {
	StartGeneration(ctx context.Context, config generation.ConfigRequest) (generation.StartResponse, error)

	ListGenerations(ctx context.Context, query generation.ListQuery) (generation.ListResponse, error)

	GetGenerationStatus(ctx context.Context, requestId int) (generation.StatusResponse, error)

	GetGenerationDownload(
		ctx context.Context, requestId int, format generation.FileFormat,
	) (generation.DownloadResponse, error)

	CancelGeneration(ctx context.Context, requestId int) (generation.CancelResponse, error)

	GetGenerationOptimization(ctx context.Context, requestId int) (optimization.Results, error)

	// Fetch streams the content at url.
	//
	// url is absolute, or relative to the api root.
	Fetch(ctx context.Context, url string, handler func(r io.Reader, size int64) error) error
}

type OptimizationClient interface {
	CreateOptimization(ctx context.Context, config optimization.ConfigCreate) (optimization.Config, error)

	GetOptimization(ctx context.Context, configId int) (optimization.Config, error)

	StartOptimization(ctx context.Context, configId int) (optimization.StartResponse, error)

	GetOptimizationTrials(ctx context.Context, configId int) ([]optimization.Trial, error)

	GetBestParameters(ctx context.Context, configId int) (optimization.Best, error)

	StopOptimization(ctx context.Context, configId int) error
}

type DatasetClient interface {
	ListDatasets(ctx context.Context) ([]datasets.Dataset, error)

	CheckFilename(ctx context.Context, filename string) (datasets.FilenameCheck, error)

	// UploadDataset sends content as a multipart file named filename.
	UploadDataset(ctx context.Context, filename string, content io.Reader) (datasets.UploadResponse, error)

	UpdateDataset(ctx context.Context, datasetId int, update datasets.Update) (datasets.UpdateResponse, error)

	DeleteDataset(ctx context.Context, datasetId int) error

	DownloadDataset(ctx context.Context, datasetId int, handler func(r io.Reader, size int64) error) error
}

type AdminClient interface {
	ListUsers(ctx context.Context, query admin.UserQuery) ([]auth.User, error)

	GetUser(ctx context.Context, userId int) (auth.User, error)

	GetUserProfile(ctx context.Context, userId int) (auth.Profile, error)

	SetUserActive(ctx context.Context, userId int, active bool) (auth.User, error)

	SetUserRole(ctx context.Context, userId int, role auth.Role) (auth.User, error)

	DeleteUser(ctx context.Context, userId int) error

	ListAllRequests(ctx context.Context, query admin.RequestQuery) ([]requests.DataRequest, error)

	GetAnyRequest(ctx context.Context, requestId int) (requests.DataRequest, error)

	ApproveRequest(ctx context.Context, requestId int) (requests.DataRequest, error)

	RejectRequest(ctx context.Context, requestId int, reason string) (requests.DataRequest, error)

	DeleteAnyRequest(ctx context.Context, requestId int) error

	ListActionLogs(ctx context.Context, page admin.Page) ([]admin.ActionLog, error)

	GetActionLog(ctx context.Context, logId int) (admin.ActionLog, error)
}

type NotificationClient interface {
	ListNotifications(ctx context.Context) (notifications.List, error)

	MarkNotificationRead(ctx context.Context, notificationId int) error

	MarkAllNotificationsRead(ctx context.Context) error
}

type StatsClient interface {
	GetStats(ctx context.Context, kind stats.Kind) (stats.Document, error)

	ExportStats(ctx context.Context, format stats.ExportFormat, handler func(r io.Reader, size int64) error) error
}

// SynthClient talks with the synthetic data server.
type SynthClient interface {
	AuthClient
	RequestClient
	GenerationClient
	OptimizationClient
	DatasetClient
	AdminClient
	NotificationClient
	StatsClient

	// SetToken replaces the bearer token. Empty token means anonymous.
	SetToken(token string)
}

type client struct {
	httpclient *http.Client

	// for uploading, downloading and starting generation
	longclient *http.Client

	api string

	// parsed api, to tell which requests may carry the token
	apiURL *url.URL

	mu    sync.RWMutex
	token string

	onUnauthorized func()
}

type Option func(*client) *client

// WithToken sets the bearer token to be sent.
func WithToken(token string) Option {
	return func(c *client) *client {
		c.token = token
		return c
	}
}

// WithUnauthorized sets the handler called for each 401 response.
func WithUnauthorized(handler func()) Option {
	return func(c *client) *client {
		c.onUnauthorized = handler
		return c
	}
}

// create new synth client for SynthProfile
//
// # Args
//
// - *sprof.SynthProfile
//
// - ...Option
//
// # Return
//
// - SynthClient: created client
//
// - error: If given profile is invalid, ErrProfileInvalid is returned.
func NewClient(prof *sprof.SynthProfile, options ...Option) (SynthClient, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}

	httpclient := &http.Client{Timeout: prof.RequestTimeout()}
	longclient := &http.Client{Timeout: prof.TransferTimeout()}

	if prof.Cert.CA != "" {
		hc, err := trustCa(httpclient, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		httpclient = hc

		lc, err := trustCa(longclient, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		longclient = lc
	}

	api := strings.TrimSuffix(prof.ApiRoot, "/")
	apiURL, err := url.Parse(api)
	if err != nil {
		return nil, err
	}

	c := &client{
		httpclient: httpclient,
		longclient: longclient,
		api:        api,
		apiURL:     apiURL,
	}
	for _, o := range options {
		c = o(c)
	}

	return c, nil
}

func (c *client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// isAPI tells whether u is under the api root: same scheme and host,
// and the path is the api path or below it.
func (c *client) isAPI(u *url.URL) bool {
	if u == nil || c.apiURL == nil {
		return false
	}
	if !strings.EqualFold(u.Scheme, c.apiURL.Scheme) || !strings.EqualFold(u.Host, c.apiURL.Host) {
		return false
	}
	root := strings.TrimSuffix(c.apiURL.Path, "/")
	return root == "" || u.Path == root || strings.HasPrefix(u.Path, root+"/")
}

// build URL with path
func (c *client) apipath(path ...string) string {
	for i := range path {
		path[i] = strings.TrimPrefix(strings.TrimSuffix(path[i], "/"), "/")
	}

	return strings.Join(append([]string{c.api}, path...), "/")
}

// newRequest builds a request to the api with JSON body (if body is not nil).
func (c *client) newRequest(
	ctx context.Context, method string, body any, query url.Values, path ...string,
) (*http.Request, error) {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(buf)
	}

	u := c.apipath(path...)
	if len(query) != 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// send sends req with credentials.
//
// Errors without response are NETWORK_ERROR.
// 401 responses are notified to the unauthorized handler.
func (c *client) send(hc *http.Client, req *http.Request) (*http.Response, error) {
	// tokens are not for other hosts, like storages of download urls.
	if tok := c.bearer(); tok != "" && c.isAPI(req.URL) {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		ne := cerr.Network(err)
		return nil, cerr.NewCuiError(
			fmt.Sprintf("%s %s failed", req.Method, req.URL.Path),
			cerr.WithDetailText(ne.Message),
			cerr.WithCause(ne),
		)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return resp, nil
}

// doJSON sends req and decodes the JSON response into T.
func doJSON[T any](c *client, hc *http.Client, req *http.Request, messageFor MessageFor) (T, error) {
	var zero T

	resp, err := c.send(hc, req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	var ret T
	if err := unmarshalJsonResponse(resp, &ret, messageFor); err != nil {
		return zero, err
	}
	return ret, nil
}

// doDiscard sends req and drops the response payload.
func doDiscard(c *client, hc *http.Client, req *http.Request, messageFor MessageFor) error {
	resp, err := c.send(hc, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(resp, messageFor)
}

// doStream sends req and passes the response payload to handler.
func doStream(
	c *client, hc *http.Client, req *http.Request, messageFor MessageFor,
	handler func(r io.Reader, size int64) error,
) error {
	req.Header.Set("Accept", "*/*")
	resp, err := c.send(hc, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := unmarshalStreamResponse(resp, messageFor)
	if err != nil {
		return err
	}
	return handler(body, resp.ContentLength)
}

func id(v int) string {
	return fmt.Sprintf("%d", v)
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}
