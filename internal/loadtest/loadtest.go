package loadtest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/clientes-api/pkg/config"
)

// Payload cuerpo fijo que envía cada usuario virtual.
const Payload = `{"nome":"Cliente01","cpf":"010.101.212-00","agencia":"4321","conta":"01010-0","nomeBanco":"BankPersonal"}`

// Result totales de una ejecución.
type Result struct {
	Requests int
	Passed   int // respuestas 201
	Failed   int // status distinto de 201 o error de transporte
	P50      time.Duration
	P95      time.Duration
}

// Runner ejecuta usuarios virtuales que crean clientes en bucle.
type Runner struct {
	cfg    config.LoadTestConfig
	client *http.Client
}

// NewRunner construye el runner. client nil usa uno con timeout de 10s.
func NewRunner(cfg config.LoadTestConfig, client *http.Client) *Runner {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Runner{cfg: cfg, client: client}
}

// Run lanza cfg.VUs trabajadores durante cfg.Duration (o hasta cancelar ctx).
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.cfg.VUs <= 0 {
		return Result{}, fmt.Errorf("loadtest: VUs debe ser > 0, recibido %d", r.cfg.VUs)
	}
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Duration)
	defer cancel()

	var (
		mu        sync.Mutex
		res       Result
		latencies []time.Duration
	)
	record := func(ok bool, d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		res.Requests++
		if ok {
			res.Passed++
		} else {
			res.Failed++
		}
		latencies = append(latencies, d)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.VUs; i++ {
		g.Go(func() error {
			for gctx.Err() == nil {
				start := time.Now()
				status, err := r.post(gctx)
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				record(err == nil && status == http.StatusCreated, time.Since(start))

				select {
				case <-gctx.Done():
					return nil
				case <-time.After(r.cfg.Pause):
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	res.P50 = percentile(latencies, 50)
	res.P95 = percentile(latencies, 95)
	return res, nil
}

func (r *Runner) post(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL, bytes.NewBufferString(Payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// percentile sobre un slice ya ordenado (nearest-rank).
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p*len(sorted)+99)/100 - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}
