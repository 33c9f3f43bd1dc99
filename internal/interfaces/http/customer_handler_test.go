package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clientes-api/internal/application/dto"
	"github.com/jhoicas/clientes-api/internal/application/usecase"
	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/internal/domain/entity"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
	apphttp "github.com/jhoicas/clientes-api/internal/interfaces/http"
	"github.com/jhoicas/clientes-api/internal/mocks"
	"github.com/jhoicas/clientes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const scenarioPayload = `{"nome":"Cliente01","cpf":"010.101.212-00","agencia":"4321","conta":"01010-0","nomeBanco":"BankPersonal"}`

// memRepo almacén en memoria con la misma semántica de ausencia que MongoDB.
type memRepo struct {
	mu    sync.Mutex
	seq   int
	order []string
	docs  map[string]entity.Customer
}

func newMemRepo() *memRepo {
	return &memRepo{docs: map[string]entity.Customer{}}
}

func (r *memRepo) FindAll(_ context.Context) ([]*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Customer, 0, len(r.order))
	for _, id := range r.order {
		if c, ok := r.docs[id]; ok {
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memRepo) Insert(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = fmt.Sprintf("%024x", r.seq)
	r.docs[c.ID] = *c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memRepo) ReplaceByID(_ context.Context, id string, c *entity.Customer) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return nil, domain.ErrNotFound
	}
	next := *c
	next.ID = id
	r.docs[id] = next
	return &next, nil
}

func (r *memRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

// buildTestApp construye la aplicación Fiber con el router real sobre el repositorio dado.
func buildTestApp(repo repository.CustomerRepository) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC: usecase.NewCustomerUseCase(repo),
		Logger:     logger.Nop(),
		AppName:    "clientes-api-test",
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeCustomer(t *testing.T, raw []byte) dto.CustomerResponse {
	t.Helper()
	var out dto.CustomerResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func assertNotFound(t *testing.T, resp *http.Response, raw []byte) {
	t.Helper()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Cliente não encontrado"}`, string(raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo completo contra el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateThenGet_RoundTrip(t *testing.T) {
	app := buildTestApp(newMemRepo())

	resp, raw := doRequest(t, app, http.MethodPost, "/clientes", scenarioPayload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeCustomer(t, raw)
	require.NotEmpty(t, created.ID, "el almacén debe asignar un id")

	resp, raw = doRequest(t, app, http.MethodGet, "/clientes/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, created.ID, got["_id"])
	assert.Equal(t, "Cliente01", got["nome"])
	assert.Equal(t, "010.101.212-00", got["cpf"])
	assert.Equal(t, "4321", got["agencia"])
	assert.Equal(t, "01010-0", got["conta"])
	assert.Equal(t, "BankPersonal", got["nomeBanco"])

	createdRaw, _ := json.Marshal(created)
	assert.JSONEq(t, string(createdRaw), string(raw), "GET debe devolver el mismo cuerpo que POST")
}

func TestList_ContieneTodosLosCreados(t *testing.T) {
	app := buildTestApp(newMemRepo())

	resp, raw := doRequest(t, app, http.MethodGet, "/clientes", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw), "colección vacía es un array vacío")

	ids := map[string]bool{}
	for i := 0; i < 3; i++ {
		resp, raw := doRequest(t, app, http.MethodPost, "/clientes", fmt.Sprintf(`{"nome":"Cliente%02d"}`, i))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids[decodeCustomer(t, raw).ID] = true
	}

	resp, raw = doRequest(t, app, http.MethodGet, "/clientes/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.CustomerResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.GreaterOrEqual(t, len(list), 3)
	for _, c := range list {
		delete(ids, c.ID)
	}
	assert.Empty(t, ids, "no se pierde ningún cliente creado")
}

func TestUpdate_SobrescrituraCompleta(t *testing.T) {
	app := buildTestApp(newMemRepo())

	_, raw := doRequest(t, app, http.MethodPost, "/clientes", scenarioPayload)
	id := decodeCustomer(t, raw).ID

	resp, raw := doRequest(t, app, http.MethodPut, "/clientes/"+id, `{"nome":"Cliente02","conta":"99999-9"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, fmt.Sprintf(`{"_id":%q,"nome":"Cliente02","conta":"99999-9"}`, id), string(raw))

	resp, raw = doRequest(t, app, http.MethodGet, "/clientes/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, fmt.Sprintf(`{"_id":%q,"nome":"Cliente02","conta":"99999-9"}`, id), string(raw),
		"los campos omitidos quedan ausentes, no se mezclan con los anteriores")
}

func TestDelete_LuegoGetYDeleteDan404(t *testing.T) {
	app := buildTestApp(newMemRepo())

	_, raw := doRequest(t, app, http.MethodPost, "/clientes", scenarioPayload)
	id := decodeCustomer(t, raw).ID

	resp, _ := doRequest(t, app, http.MethodDelete, "/clientes/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw = doRequest(t, app, http.MethodGet, "/clientes/"+id, "")
	assertNotFound(t, resp, raw)

	resp, raw = doRequest(t, app, http.MethodDelete, "/clientes/"+id, "")
	assertNotFound(t, resp, raw)
}

func TestInexistente_Devuelve404(t *testing.T) {
	app := buildTestApp(newMemRepo())
	const missing = "65a1f0c2e4b0a1b2c3d4e5f6"

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			body := ""
			if method == http.MethodPut {
				body = scenarioPayload
			}
			resp, raw := doRequest(t, app, method, "/clientes/"+missing, body)
			assertNotFound(t, resp, raw)
		})
	}
}

func TestCreate_SinCuerpoCreaClienteVacio(t *testing.T) {
	app := buildTestApp(newMemRepo())

	resp, raw := doRequest(t, app, http.MethodPost, "/clientes", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeCustomer(t, raw)
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.Name)
}

func TestCreate_CamposDesconocidosSeIgnoran(t *testing.T) {
	app := buildTestApp(newMemRepo())

	resp, raw := doRequest(t, app, http.MethodPost, "/clientes", `{"nome":"Cliente01","saldo":1000}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotContains(t, string(raw), "saldo")
}

func TestCuerpoMalformado_Devuelve400(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(repo)

	resp, raw := doRequest(t, app, http.MethodPost, "/clientes", `{"nome":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotEmpty(t, body.Message)

	_, raw = doRequest(t, app, http.MethodPost, "/clientes", scenarioPayload)
	id := decodeCustomer(t, raw).ID
	resp, _ = doRequest(t, app, http.MethodPut, "/clientes/"+id, `[1,2`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := buildTestApp(newMemRepo())

	resp, raw := doRequest(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"clientes-api-test"}`, string(raw))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos del almacén → status según la operación
// ──────────────────────────────────────────────────────────────────────────────

func TestFallosDelAlmacen(t *testing.T) {
	const id = "65a1f0c2e4b0a1b2c3d4e5f6"
	storeErr := errors.New("connection reset by peer")

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func(m *mocks.CustomerRepository)
		wantStatus int
		wantMsg    string
	}{
		{
			name:   "list_500",
			method: http.MethodGet, path: "/clientes",
			setupMock: func(m *mocks.CustomerRepository) {
				m.On("FindAll", mock.Anything).Return(nil, storeErr).Once()
			},
			wantStatus: http.StatusInternalServerError, wantMsg: storeErr.Error(),
		},
		{
			name:   "create_400",
			method: http.MethodPost, path: "/clientes", body: scenarioPayload,
			setupMock: func(m *mocks.CustomerRepository) {
				m.On("Insert", mock.Anything, mock.Anything).Return(errors.New("Document failed validation")).Once()
			},
			wantStatus: http.StatusBadRequest, wantMsg: "Document failed validation",
		},
		{
			name:   "get_id_malformado_500",
			method: http.MethodGet, path: "/clientes/abc",
			setupMock: func(m *mocks.CustomerRepository) {
				m.On("FindByID", mock.Anything, "abc").Return(nil, fmt.Errorf("%w %q", domain.ErrInvalidID, "abc")).Once()
			},
			wantStatus: http.StatusInternalServerError, wantMsg: `identificador inválido "abc"`,
		},
		{
			name:   "update_carga_falla_500",
			method: http.MethodPut, path: "/clientes/" + id, body: scenarioPayload,
			setupMock: func(m *mocks.CustomerRepository) {
				m.On("FindByID", mock.Anything, id).Return(nil, storeErr).Once()
			},
			wantStatus: http.StatusInternalServerError, wantMsg: storeErr.Error(),
		},
		{
			name:   "update_reemplazo_falla_400",
			method: http.MethodPut, path: "/clientes/" + id, body: scenarioPayload,
			setupMock: func(m *mocks.CustomerRepository) {
				m.On("FindByID", mock.Anything, id).Return(&entity.Customer{ID: id}, nil).Once()
				m.On("ReplaceByID", mock.Anything, id, mock.Anything).Return(nil, storeErr).Once()
			},
			wantStatus: http.StatusBadRequest, wantMsg: storeErr.Error(),
		},
		{
			name:   "update_documento_desaparecido_404",
			method: http.MethodPut, path: "/clientes/" + id, body: scenarioPayload,
			setupMock: func(m *mocks.CustomerRepository) {
				m.On("FindByID", mock.Anything, id).Return(&entity.Customer{ID: id}, nil).Once()
				m.On("ReplaceByID", mock.Anything, id, mock.Anything).Return(nil, domain.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound, wantMsg: apphttp.MsgNotFound,
		},
		{
			name:   "delete_falla_500",
			method: http.MethodDelete, path: "/clientes/" + id,
			setupMock: func(m *mocks.CustomerRepository) {
				m.On("FindByID", mock.Anything, id).Return(&entity.Customer{ID: id}, nil).Once()
				m.On("DeleteByID", mock.Anything, id).Return(storeErr).Once()
			},
			wantStatus: http.StatusInternalServerError, wantMsg: storeErr.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.CustomerRepository)
			tt.setupMock(repo)
			app := buildTestApp(repo)

			resp, raw := doRequest(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Contains(t, body.Message, tt.wantMsg)
			repo.AssertExpectations(t)
		})
	}
}
