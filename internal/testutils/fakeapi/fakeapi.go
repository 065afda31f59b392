// Package fakeapi is an in-memory synthetic data server for tests.
//
// It serves a subset of the API with the same paths and JSON shapes.
package fakeapi

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/api-types/datasets"
	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/api-types/misc/rfctime"
	"github.com/synthgen/synthctl/api-types/notifications"
	"github.com/synthgen/synthctl/api-types/requests"
)

// Received is a record of a request which the server got.
type Received struct {
	Method        string
	Path          string
	RequestId     string
	Authorization string
}

type account struct {
	user     auth.User
	password string
}

type Server struct {
	*echo.Echo

	mu sync.Mutex

	accounts map[string]*account
	tokens   map[string]auth.User

	requests    map[int]*requests.DataRequest
	generations map[int]*generationState
	datasets    []datasets.Dataset
	notes       notifications.List

	// When true, every authenticated endpoint answers 401.
	expired bool

	// When not 0, cancelling generations answers this status code.
	cancelFailure int

	received []Received
	nextId   int
}

type generationState struct {
	script []generation.StatusResponse
	polled int
}

type Option func(*Server) *Server

// Verbose logs requests to stderr.
func Verbose() Option {
	return func(s *Server) *Server {
		s.Logger.SetLevel(log.DEBUG)
		return s
	}
}

func New(options ...Option) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)

	s := &Server{
		Echo:        e,
		accounts:    map[string]*account{},
		tokens:      map[string]auth.User{},
		requests:    map[int]*requests.DataRequest{},
		generations: map[int]*generationState{},
		nextId:      1,
	}
	for _, o := range options {
		s = o(s)
	}

	e.Use(s.record, logRequest)

	e.POST("/auth/login", s.login)
	e.POST("/auth/signup", s.signup)

	a := s.authenticate
	e.GET("/auth/profile", s.profile, a)

	e.GET("/data/requests", s.listRequests, a)
	e.POST("/data/requests", s.createRequest, a)
	e.GET("/data/requests/:id", s.getRequest, a)
	e.POST("/data/generate/:id", s.generate, a)

	e.PUT("/admin/requests/:id/approve", s.admin(s.approve), a)
	e.PUT("/admin/requests/:id/reject", s.admin(s.reject), a)

	e.POST("/generation/v2/start", s.startGeneration, a)
	e.GET("/generation/v2/requests/:id/status", s.generationStatus, a)
	e.DELETE("/generation/v2/requests/:id", s.cancelGeneration, a)

	e.GET("/datasets/", s.listDatasets, a)
	e.GET("/datasets/check-filename/:name", s.checkFilename, a)
	e.POST("/datasets/upload", s.upload, a)

	e.GET("/notifications/", s.listNotifications, a)
	e.POST("/notifications/:id/read", s.readNotification, a)
	e.POST("/notifications/read-all", s.readAllNotifications, a)

	return s
}

// AddUser registers an account, and returns the user and its valid token.
func (s *Server) AddUser(email, password string, role auth.Role) (auth.User, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := auth.User{Id: s.newId(), Email: email, Role: role, IsActive: true}
	s.accounts[email] = &account{user: u, password: password}
	tok := fmt.Sprintf("token-%d-%d", u.Id, len(s.tokens))
	s.tokens[tok] = u
	return u, tok
}

// AddRequest registers a data request.
func (s *Server) AddRequest(dr requests.DataRequest) requests.DataRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dr.Id == 0 {
		dr.Id = s.newId()
	}
	s.requests[dr.Id] = &dr
	return dr
}

func (s *Server) Request(id int) (requests.DataRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.requests[id]
	if !ok {
		return requests.DataRequest{}, false
	}
	return *dr, true
}

// Script sets statuses answered for the generation, in order.
//
// After the last one, the last one is repeated.
func (s *Server) Script(id int, statuses ...generation.StatusResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[id] = &generationState{script: statuses}
}

// Polled returns how many times the status of the generation is asked.
func (s *Server) Polled(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.generations[id]; ok {
		return g.polled
	}
	return 0
}

func (s *Server) AddNotification(n notifications.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.Id == 0 {
		n.Id = s.newId()
	}
	s.notes = append(s.notes, n)
}

func (s *Server) Notifications() notifications.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(notifications.List{}, s.notes...)
}

func (s *Server) Datasets() []datasets.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]datasets.Dataset{}, s.datasets...)
}

// Expire makes every token invalid.
func (s *Server) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = true
}

// FailCancel makes cancellation of generations answer the status code.
func (s *Server) FailCancel(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelFailure = status
}

func (s *Server) Received() []Received {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Received{}, s.received...)
}

func (s *Server) newId() int {
	id := s.nextId
	s.nextId += 1
	return id
}

func now() rfctime.RFC3339 {
	return rfctime.RFC3339(time.Now().UTC().Truncate(time.Millisecond))
}

func detail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"detail": message})
}

func pathId(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, detail(c, http.StatusUnprocessableEntity, "id should be integer")
	}
	return id, nil
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		s.mu.Lock()
		s.received = append(s.received, Received{
			Method:        req.Method,
			Path:          req.URL.Path,
			RequestId:     req.Header.Get(echo.HeaderXRequestID),
			Authorization: req.Header.Get(echo.HeaderAuthorization),
		})
		s.mu.Unlock()
		return next(c)
	}
}

func logRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		begin := time.Now()
		err := next(c)
		c.Logger().Debugf(
			"%s %s -> %d in %v (error = %v)",
			c.Request().Method, c.Request().URL, c.Response().Status, time.Since(begin), err,
		)
		return err
	}
}

const userKey = "user"

func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tok, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")

		s.mu.Lock()
		u, found := s.tokens[tok]
		expired := s.expired
		s.mu.Unlock()

		if !ok || !found || expired {
			return detail(c, http.StatusUnauthorized, "Could not validate credentials")
		}
		c.Set(userKey, u)
		return next(c)
	}
}

func (s *Server) admin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if u, _ := c.Get(userKey).(auth.User); u.Role != auth.RoleAdmin {
			return detail(c, http.StatusForbidden, "Admin privileges required")
		}
		return next(c)
	}
}

func (s *Server) login(c echo.Context) error {
	email := c.FormValue("username")
	password := c.FormValue("password")

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[email]
	if !ok || a.password != password {
		return detail(c, http.StatusUnauthorized, "Incorrect email or password")
	}
	if !a.user.IsActive {
		return detail(c, http.StatusForbidden, "Account is deactivated")
	}
	tok := fmt.Sprintf("token-%d-%d", a.user.Id, len(s.tokens))
	s.tokens[tok] = a.user
	return c.JSON(http.StatusOK, auth.LoginResponse{AccessToken: tok, TokenType: "bearer", User: a.user})
}

func (s *Server) signup(c echo.Context) error {
	req := auth.SignupRequest{}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{
				{"loc": []string{"body", "email"}, "msg": "field required", "type": "value_error.missing"},
			},
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[req.Email]; ok {
		return detail(c, http.StatusBadRequest, "Email already registered")
	}
	u := auth.User{Id: s.newId(), Email: req.Email, Username: req.Username, Role: auth.RoleUser, IsActive: true}
	s.accounts[req.Email] = &account{user: u, password: req.Password}
	return c.JSON(http.StatusOK, auth.SignupResponse{Message: "User created successfully", User: &u})
}

func (s *Server) profile(c echo.Context) error {
	u := c.Get(userKey).(auth.User)
	return c.JSON(http.StatusOK, auth.Profile{Id: u.Id, UserId: u.Id, FullName: u.Username})
}

func (s *Server) listRequests(c echo.Context) error {
	u := c.Get(userKey).(auth.User)

	s.mu.Lock()
	defer s.mu.Unlock()
	ret := []requests.DataRequest{}
	for id := 1; id < s.nextId; id++ {
		if dr, ok := s.requests[id]; ok && dr.UserId == u.Id {
			ret = append(ret, *dr)
		}
	}
	return c.JSON(http.StatusOK, ret)
}

func (s *Server) createRequest(c echo.Context) error {
	u := c.Get(userKey).(auth.User)
	create := requests.Create{}
	if err := c.Bind(&create); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}
	if create.Request.RequestName == "" {
		return detail(c, http.StatusBadRequest, "request_name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	dr := &requests.DataRequest{
		Id:                s.newId(),
		RequestName:       create.Request.RequestName,
		DatasetName:       create.Request.DatasetName,
		UploadedDatasetId: create.Request.UploadedDatasetId,
		UserId:            u.Id,
		Status:            requests.Pending,
		CreatedAt:         now(),
	}
	dr.Parameters = []requests.StoredParams{{Id: dr.Id, RequestId: dr.Id, Params: create.Params}}
	s.requests[dr.Id] = dr
	return c.JSON(http.StatusOK, dr)
}

func (s *Server) getRequest(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.requests[id]
	if !ok {
		return detail(c, http.StatusNotFound, "Request not found")
	}
	return c.JSON(http.StatusOK, dr)
}

func (s *Server) generate(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.requests[id]
	if !ok {
		return detail(c, http.StatusNotFound, "Request not found")
	}
	if dr.Status != requests.Approved {
		return detail(c, http.StatusBadRequest, "Request is not approved")
	}
	dr.Status = requests.Processing
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Generation started", "request_id": dr.Id, "status": dr.Status,
	})
}

func (s *Server) approve(c echo.Context) error {
	return s.decide(c, requests.Approved, "")
}

func (s *Server) reject(c echo.Context) error {
	return s.decide(c, requests.Rejected, c.QueryParam("rejection_reason"))
}

func (s *Server) decide(c echo.Context, status requests.Status, reason string) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.requests[id]
	if !ok {
		return detail(c, http.StatusNotFound, "Request not found")
	}
	if dr.Status != requests.Pending {
		return detail(c, http.StatusBadRequest, "Request is not pending")
	}
	dr.Status = status
	dr.RejectionReason = reason
	return c.JSON(http.StatusOK, dr)
}

func (s *Server) startGeneration(c echo.Context) error {
	config := generation.ConfigRequest{}
	if err := c.Bind(&config); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}
	if err := config.Validate(); err != nil {
		return detail(c, http.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newId()
	if _, ok := s.generations[id]; !ok {
		s.generations[id] = &generationState{script: []generation.StatusResponse{
			{Request: generation.Details{Id: id, Status: generation.Pending, Mode: config.Mode}},
		}}
	}
	return c.JSON(http.StatusOK, generation.StartResponse{
		Message: "Generation started", RequestId: id, Status: generation.Pending, Mode: config.Mode,
	})
}

func (s *Server) generationStatus(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.generations[id]
	if !ok || len(g.script) == 0 {
		return detail(c, http.StatusNotFound, "Generation request not found")
	}
	i := min(g.polled, len(g.script)-1)
	g.polled += 1
	return c.JSON(http.StatusOK, g.script[i])
}

func (s *Server) cancelGeneration(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelFailure != 0 {
		return detail(c, s.cancelFailure, "Cannot cancel generation")
	}
	g, ok := s.generations[id]
	if !ok {
		return detail(c, http.StatusNotFound, "Generation request not found")
	}
	last := g.script[len(g.script)-1]
	last.Request.Status = generation.Cancelled
	last.CanCancel = false
	g.script = append(g.script, last)
	return c.JSON(http.StatusOK, generation.CancelResponse{Message: "Generation cancelled"})
}

func (s *Server) listDatasets(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]any{"datasets": append([]datasets.Dataset{}, s.datasets...)})
}

func (s *Server) checkFilename(c echo.Context) error {
	name := c.Param("name")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.datasets {
		if d.OriginalFilename == name {
			id := d.Id
			return c.JSON(http.StatusOK, datasets.FilenameCheck{
				Exists: true, DatasetId: &id, Message: "A file with this name already exists",
			})
		}
	}
	return c.JSON(http.StatusOK, datasets.FilenameCheck{Exists: false})
}

func (s *Server) upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return detail(c, http.StatusBadRequest, "file is required")
	}
	if !datasets.Accepts(fh.Filename) {
		return detail(c, http.StatusBadRequest, "Unsupported file type")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	columns, rows, err := readCsv(f)
	if err != nil {
		return detail(c, http.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created := now()
	d := datasets.Dataset{
		Id: s.newId(), OriginalFilename: fh.Filename, Filename: fh.Filename,
		FileSize: fh.Size, NRows: rows, NColumns: len(columns), Columns: columns,
		CreatedAt: &created,
	}
	s.datasets = append(s.datasets, d)
	return c.JSON(http.StatusOK, datasets.UploadResponse{
		Message: "File uploaded successfully", FileId: d.Id,
		Filename: d.Filename, OriginalFilename: d.OriginalFilename, FileSize: d.FileSize,
		NRows: d.NRows, NColumns: d.NColumns, Columns: d.Columns,
	})
}

func readCsv(r io.Reader) (columns []string, rows int, err error) {
	cr := csv.NewReader(r)
	columns, err = cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, errors.New("file is empty")
		}
		return nil, 0, err
	}
	for {
		if _, err := cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return columns, rows, nil
			}
			return nil, 0, err
		}
		rows += 1
	}
}

func (s *Server) listNotifications(c echo.Context) error {
	u := c.Get(userKey).(auth.User)
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := notifications.List{}
	for _, n := range s.notes {
		if n.UserId == u.Id {
			ret = append(ret, n)
		}
	}
	return c.JSON(http.StatusOK, ret)
}

func (s *Server) readNotification(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].Id == id {
			s.notes[i].IsRead = true
			return c.JSON(http.StatusOK, map[string]string{"message": "Notification marked as read"})
		}
	}
	return detail(c, http.StatusNotFound, "Notification not found")
}

func (s *Server) readAllNotifications(c echo.Context) error {
	u := c.Get(userKey).(auth.User)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].UserId == u.Id {
			s.notes[i].IsRead = true
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}
