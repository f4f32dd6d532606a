package delivery

import (
	"babycare/config"
	"babycare/domain"
	"babycare/middleware"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	ownerID = 1
	childID = 10
	secret  = "delivery-test-secret"
)

var (
	_ domain.AuthUseCase        = (*authUCMock)(nil)
	_ domain.ChildUseCase       = (*childUCMock)(nil)
	_ domain.DiaperUseCase      = (*diaperUCMock)(nil)
	_ domain.FeedingUseCase     = (*feedingUCMock)(nil)
	_ domain.GrowthUseCase      = (*growthUCMock)(nil)
	_ domain.SleepUseCase       = (*sleepUCMock)(nil)
	_ domain.VaccinationUseCase = (*vaccinationUCMock)(nil)
	_ domain.MediaUseCase       = (*mediaUCMock)(nil)
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   interface{}     `json:"error"`
}

// testServer is an app wired the way main wires it, with a token for
// ownerID.
type testServer struct {
	app   *fiber.App
	creds *middleware.JWTManager
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	app := fiber.New(config.GetFiberConfig())
	app.Use(middleware.RequestID())

	creds := middleware.NewJWTManager(secret, time.Hour)
	token, err := creds.GenerateJWT(&domain.User{UserID: ownerID, Email: "parent@example.com"})
	require.NoError(t, err)

	return &testServer{app: app, creds: creds, token: token}
}

// do sends a request with the owner's token.
func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	return s.doAs(t, s.token, method, path, body)
}

// doAs sends a request with the given token; an empty token sends no
// Authorization header. String bodies are sent verbatim.
func (s *testServer) doAs(t *testing.T, token, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := sonic.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, sonic.Unmarshal(raw, &env))
	return env
}

func arg[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

type authUCMock struct{ mock.Mock }

func (m *authUCMock) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	return arg[*domain.User](args, 0), args.Error(1)
}

func (m *authUCMock) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	return arg[*domain.LoginResponse](args, 0), args.Error(1)
}

func (m *authUCMock) Profile(ctx context.Context, userID int) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return arg[*domain.User](args, 0), args.Error(1)
}

type childUCMock struct{ mock.Mock }

func (m *childUCMock) Create(ctx context.Context, userID int, req *domain.ChildPayload) (*domain.Child, error) {
	args := m.Called(ctx, userID, req)
	return arg[*domain.Child](args, 0), args.Error(1)
}

func (m *childUCMock) List(ctx context.Context, userID int) ([]domain.Child, error) {
	args := m.Called(ctx, userID)
	return arg[[]domain.Child](args, 0), args.Error(1)
}

func (m *childUCMock) Get(ctx context.Context, userID, id int) (*domain.Child, error) {
	args := m.Called(ctx, userID, id)
	return arg[*domain.Child](args, 0), args.Error(1)
}

func (m *childUCMock) Update(ctx context.Context, userID, id int, req *domain.ChildPayload) (*domain.Child, error) {
	args := m.Called(ctx, userID, id, req)
	return arg[*domain.Child](args, 0), args.Error(1)
}

func (m *childUCMock) Delete(ctx context.Context, userID, id int) error {
	return m.Called(ctx, userID, id).Error(0)
}

type diaperUCMock struct{ mock.Mock }

func (m *diaperUCMock) Create(ctx context.Context, userID, childID int, req *domain.DiaperPayload) (*domain.Diaper, error) {
	args := m.Called(ctx, userID, childID, req)
	return arg[*domain.Diaper](args, 0), args.Error(1)
}

func (m *diaperUCMock) ListByChild(ctx context.Context, userID, childID int, date string) ([]domain.Diaper, error) {
	args := m.Called(ctx, userID, childID, date)
	return arg[[]domain.Diaper](args, 0), args.Error(1)
}

func (m *diaperUCMock) Get(ctx context.Context, userID, id int) (*domain.Diaper, error) {
	args := m.Called(ctx, userID, id)
	return arg[*domain.Diaper](args, 0), args.Error(1)
}

func (m *diaperUCMock) Update(ctx context.Context, userID, id int, req *domain.DiaperPayload) (*domain.Diaper, error) {
	args := m.Called(ctx, userID, id, req)
	return arg[*domain.Diaper](args, 0), args.Error(1)
}

func (m *diaperUCMock) Delete(ctx context.Context, userID, id int) error {
	return m.Called(ctx, userID, id).Error(0)
}

type feedingUCMock struct{ mock.Mock }

func (m *feedingUCMock) Create(ctx context.Context, userID, childID int, req *domain.FeedingPayload) (*domain.Feeding, error) {
	args := m.Called(ctx, userID, childID, req)
	return arg[*domain.Feeding](args, 0), args.Error(1)
}

func (m *feedingUCMock) ListByChild(ctx context.Context, userID, childID int) ([]domain.Feeding, error) {
	args := m.Called(ctx, userID, childID)
	return arg[[]domain.Feeding](args, 0), args.Error(1)
}

func (m *feedingUCMock) Get(ctx context.Context, userID, id int) (*domain.Feeding, error) {
	args := m.Called(ctx, userID, id)
	return arg[*domain.Feeding](args, 0), args.Error(1)
}

func (m *feedingUCMock) Update(ctx context.Context, userID, id int, req *domain.FeedingPayload) (*domain.Feeding, error) {
	args := m.Called(ctx, userID, id, req)
	return arg[*domain.Feeding](args, 0), args.Error(1)
}

func (m *feedingUCMock) Delete(ctx context.Context, userID, id int) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *feedingUCMock) Today(ctx context.Context, userID, childID int) (*domain.FeedingSummary, error) {
	args := m.Called(ctx, userID, childID)
	return arg[*domain.FeedingSummary](args, 0), args.Error(1)
}

func (m *feedingUCMock) ByDate(ctx context.Context, userID, childID int, date string) (*domain.FeedingSummary, []domain.Feeding, error) {
	args := m.Called(ctx, userID, childID, date)
	return arg[*domain.FeedingSummary](args, 0), arg[[]domain.Feeding](args, 1), args.Error(2)
}

func (m *feedingUCMock) Weekly(ctx context.Context, userID, childID int) (*domain.FeedingPeriodSummary, error) {
	args := m.Called(ctx, userID, childID)
	return arg[*domain.FeedingPeriodSummary](args, 0), args.Error(1)
}

func (m *feedingUCMock) Monthly(ctx context.Context, userID, childID int, month string) (*domain.FeedingPeriodSummary, error) {
	args := m.Called(ctx, userID, childID, month)
	return arg[*domain.FeedingPeriodSummary](args, 0), args.Error(1)
}

func (m *feedingUCMock) MonthlyReport(ctx context.Context, userID, childID int, month string) (*domain.FeedingPeriodSummary, []domain.Feeding, error) {
	args := m.Called(ctx, userID, childID, month)
	return arg[*domain.FeedingPeriodSummary](args, 0), arg[[]domain.Feeding](args, 1), args.Error(2)
}

type growthUCMock struct{ mock.Mock }

func (m *growthUCMock) Create(ctx context.Context, userID, childID int, req *domain.GrowthPayload) (*domain.Growth, error) {
	args := m.Called(ctx, userID, childID, req)
	return arg[*domain.Growth](args, 0), args.Error(1)
}

func (m *growthUCMock) ListByChild(ctx context.Context, userID, childID int) ([]domain.Growth, error) {
	args := m.Called(ctx, userID, childID)
	return arg[[]domain.Growth](args, 0), args.Error(1)
}

func (m *growthUCMock) Get(ctx context.Context, userID, id int) (*domain.Growth, error) {
	args := m.Called(ctx, userID, id)
	return arg[*domain.Growth](args, 0), args.Error(1)
}

func (m *growthUCMock) Update(ctx context.Context, userID, id int, req *domain.GrowthPayload) (*domain.Growth, error) {
	args := m.Called(ctx, userID, id, req)
	return arg[*domain.Growth](args, 0), args.Error(1)
}

func (m *growthUCMock) Delete(ctx context.Context, userID, id int) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *growthUCMock) Statistics(ctx context.Context, userID, childID int) (*domain.GrowthStatistics, error) {
	args := m.Called(ctx, userID, childID)
	return arg[*domain.GrowthStatistics](args, 0), args.Error(1)
}

func (m *growthUCMock) Daily(ctx context.Context, userID, childID int) ([]domain.GrowthDay, error) {
	args := m.Called(ctx, userID, childID)
	return arg[[]domain.GrowthDay](args, 0), args.Error(1)
}

type sleepUCMock struct{ mock.Mock }

func (m *sleepUCMock) Upsert(ctx context.Context, userID, childID int, req *domain.SleepPayload) (*domain.SleepUpsertResult, error) {
	args := m.Called(ctx, userID, childID, req)
	return arg[*domain.SleepUpsertResult](args, 0), args.Error(1)
}

func (m *sleepUCMock) ListByChild(ctx context.Context, userID, childID int) ([]domain.Sleep, error) {
	args := m.Called(ctx, userID, childID)
	return arg[[]domain.Sleep](args, 0), args.Error(1)
}

func (m *sleepUCMock) ByDate(ctx context.Context, userID, childID int, date string) ([]domain.Sleep, error) {
	args := m.Called(ctx, userID, childID, date)
	return arg[[]domain.Sleep](args, 0), args.Error(1)
}

func (m *sleepUCMock) Get(ctx context.Context, userID, id int) (*domain.Sleep, error) {
	args := m.Called(ctx, userID, id)
	return arg[*domain.Sleep](args, 0), args.Error(1)
}

func (m *sleepUCMock) Update(ctx context.Context, userID, id int, req *domain.SleepPayload) (*domain.Sleep, error) {
	args := m.Called(ctx, userID, id, req)
	return arg[*domain.Sleep](args, 0), args.Error(1)
}

func (m *sleepUCMock) Delete(ctx context.Context, userID, id int) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *sleepUCMock) Weekly(ctx context.Context, userID, childID int) (*domain.SleepPeriodSummary, error) {
	args := m.Called(ctx, userID, childID)
	return arg[*domain.SleepPeriodSummary](args, 0), args.Error(1)
}

func (m *sleepUCMock) Monthly(ctx context.Context, userID, childID int, month string) (*domain.SleepPeriodSummary, error) {
	args := m.Called(ctx, userID, childID, month)
	return arg[*domain.SleepPeriodSummary](args, 0), args.Error(1)
}

func (m *sleepUCMock) AutoFill(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type vaccinationUCMock struct{ mock.Mock }

func (m *vaccinationUCMock) Create(ctx context.Context, userID, childID int, req *domain.VaccinationPayload) (*domain.Vaccination, error) {
	args := m.Called(ctx, userID, childID, req)
	return arg[*domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationUCMock) ListByChild(ctx context.Context, userID, childID int) ([]domain.Vaccination, error) {
	args := m.Called(ctx, userID, childID)
	return arg[[]domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationUCMock) Get(ctx context.Context, userID, id int) (*domain.Vaccination, error) {
	args := m.Called(ctx, userID, id)
	return arg[*domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationUCMock) Update(ctx context.Context, userID, id int, req *domain.VaccinationPayload) (*domain.Vaccination, error) {
	args := m.Called(ctx, userID, id, req)
	return arg[*domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationUCMock) Complete(ctx context.Context, userID, id int, req *domain.CompletionPayload) (*domain.Vaccination, error) {
	args := m.Called(ctx, userID, id, req)
	return arg[*domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationUCMock) Uncomplete(ctx context.Context, userID, id int) (*domain.Vaccination, error) {
	args := m.Called(ctx, userID, id)
	return arg[*domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationUCMock) Delete(ctx context.Context, userID, id int) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *vaccinationUCMock) Due(ctx context.Context, userID, childID int) ([]domain.Vaccination, error) {
	args := m.Called(ctx, userID, childID)
	return arg[[]domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationUCMock) Overdue(ctx context.Context, userID, childID int) ([]domain.Vaccination, error) {
	args := m.Called(ctx, userID, childID)
	return arg[[]domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationUCMock) Progress(ctx context.Context, userID, childID int) (*domain.VaccinationProgress, error) {
	args := m.Called(ctx, userID, childID)
	return arg[*domain.VaccinationProgress](args, 0), args.Error(1)
}

func (m *vaccinationUCMock) Schedule(ctx context.Context, userID, childID int) ([]domain.VaccinationMonth, error) {
	args := m.Called(ctx, userID, childID)
	return arg[[]domain.VaccinationMonth](args, 0), args.Error(1)
}

func (m *vaccinationUCMock) Card(ctx context.Context, userID, childID int) (*domain.VaccinationCard, error) {
	args := m.Called(ctx, userID, childID)
	return arg[*domain.VaccinationCard](args, 0), args.Error(1)
}

type mediaUCMock struct{ mock.Mock }

func (m *mediaUCMock) List(ctx context.Context) ([]bson.M, error) {
	args := m.Called(ctx)
	return arg[[]bson.M](args, 0), args.Error(1)
}
