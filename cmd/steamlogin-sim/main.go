// Command steamlogin-sim drives many concurrent login attempts against a
// scripted in-process provider and reports latency percentiles plus the
// shared metrics snapshot. It exists to exercise the session machinery under
// contention without any network dependency.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	steamlogin "github.com/MrEthical07/steamlogin"
	"github.com/MrEthical07/steamlogin/steamid"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func main() {
	var (
		attempts      = flag.Int("attempts", 1000, "number of login attempts to run")
		concurrency   = flag.Int("concurrency", 64, "number of concurrent workers")
		guardRate     = flag.Float64("guard-rate", 0.3, "fraction of attempts challenged with an email guard")
		failRate      = flag.Float64("fail-rate", 0.05, "fraction of attempts rejected for bad credentials")
		providerDelay = flag.Duration("provider-delay", 2*time.Millisecond, "simulated provider round-trip latency")
		withCookies   = flag.Bool("cookies", true, "exchange refresh tokens for web cookies after login")
	)
	flag.Parse()

	if *attempts <= 0 || *concurrency <= 0 {
		fmt.Fprintln(os.Stderr, "attempts and concurrency must be > 0")
		os.Exit(2)
	}
	if *guardRate < 0 || *guardRate > 1 || *failRate < 0 || *failRate > 1 {
		fmt.Fprintln(os.Stderr, "guard-rate and fail-rate must be within [0,1]")
		os.Exit(2)
	}

	shared := steamlogin.NewMetrics(steamlogin.MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	finalizeURL, stopWeb, err := startLocalSteamWeb()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start local web endpoints: %v\n", err)
		os.Exit(1)
	}
	defer stopWeb()

	fmt.Printf("running %d attempts across %d workers (guard-rate=%.2f fail-rate=%.2f delay=%s)\n",
		*attempts, *concurrency, *guardRate, *failRate, *providerDelay)

	var (
		wg            sync.WaitGroup
		cursor        int64
		loginFails    int64
		cookieFails   int64
		loginLat      = make([]time.Duration, 0, *attempts)
		cookieLat     = make([]time.Duration, 0, *attempts)
		loginLatMu    sync.Mutex
		cookieLatMu   sync.Mutex
		start         = time.Now()
		cookiesActive = *withCookies
	)

	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= *attempts {
					return
				}

				outcome := runAttempt(attemptParams{
					finalizeURL: finalizeURL,
					metrics:     shared,
					delay:       *providerDelay,
					wantGuard:   r.Float64() < *guardRate,
					wantFail:    r.Float64() < *failRate,
					withCookies: cookiesActive,
					seed:        int64(i)*6151 + int64(worker),
				})

				loginLatMu.Lock()
				loginLat = append(loginLat, outcome.loginLatency)
				loginLatMu.Unlock()
				if !outcome.loginOK {
					atomic.AddInt64(&loginFails, 1)
					continue
				}
				if cookiesActive {
					cookieLatMu.Lock()
					cookieLat = append(cookieLat, outcome.cookieLatency)
					cookieLatMu.Unlock()
					if !outcome.cookieOK {
						atomic.AddInt64(&cookieFails, 1)
					}
				}
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)

	fmt.Println("---- results ----")
	printStats("login", computeStats(total, loginLat, loginFails))
	if cookiesActive {
		printStats("cookies", computeStats(total, cookieLat, cookieFails))
	}

	fmt.Println("---- metrics ----")
	printMetrics(shared.Snapshot())
}

type attemptParams struct {
	finalizeURL string
	metrics     *steamlogin.Metrics
	delay       time.Duration
	wantGuard   bool
	wantFail    bool
	withCookies bool
	seed        int64
}

type attemptOutcome struct {
	loginOK       bool
	cookieOK      bool
	loginLatency  time.Duration
	cookieLatency time.Duration
}

func runAttempt(p attemptParams) attemptOutcome {
	client := newSimAuthClient(p.delay, p.wantGuard, p.wantFail, p.seed)

	cfg := steamlogin.DefaultConfig()
	cfg.HTTP.FinalizeURL = p.finalizeURL
	cfg.Events.Enabled = true
	cfg.Events.BufferSize = 16
	cfg.Events.DropIfFull = false

	sink := steamlogin.NewChannelSink(16)

	session, err := steamlogin.New().
		WithConfig(cfg).
		WithAuthClient(client).
		WithEventSink(sink).
		WithMetrics(p.metrics).
		Build()
	if err != nil {
		return attemptOutcome{}
	}
	defer session.Close()

	ctx := context.Background()
	account := "load-" + uuid.NewString()[:8]

	t0 := time.Now()
	result, err := session.StartWithCredentials(ctx, steamlogin.StartLoginDetails{
		AccountName: account,
		Password:    "correct-horse",
		Persistent:  true,
	})
	if err != nil {
		return attemptOutcome{loginLatency: time.Since(t0)}
	}

	if result.ActionRequired {
		if err := session.SubmitSteamGuardCode(ctx, "R2D2C"); err != nil {
			return attemptOutcome{loginLatency: time.Since(t0)}
		}
	}

	deadline := time.After(time.Minute)
	for {
		select {
		case ev := <-sink.Events():
			switch ev.Type {
			case steamlogin.EventAuthenticated:
				out := attemptOutcome{loginOK: true, loginLatency: time.Since(t0)}
				if p.withCookies {
					t1 := time.Now()
					_, err := session.GetWebCookies(ctx)
					out.cookieLatency = time.Since(t1)
					out.cookieOK = err == nil
				}
				return out
			case steamlogin.EventTimeout, steamlogin.EventError:
				return attemptOutcome{loginLatency: time.Since(t0)}
			}
		case <-deadline:
			return attemptOutcome{loginLatency: time.Since(t0)}
		}
	}
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

func printMetrics(snap steamlogin.MetricsSnapshot) {
	lines := []struct {
		name string
		id   steamlogin.MetricID
	}{
		{"login_started", steamlogin.MetricLoginStarted},
		{"login_success", steamlogin.MetricLoginSuccess},
		{"login_failure", steamlogin.MetricLoginFailure},
		{"login_timeout", steamlogin.MetricLoginTimeout},
		{"guard_required", steamlogin.MetricGuardRequired},
		{"guard_accepted", steamlogin.MetricGuardCodeAccepted},
		{"guard_rejected", steamlogin.MetricGuardCodeRejected},
		{"poll_ticks", steamlogin.MetricPollTicks},
		{"client_rotations", steamlogin.MetricClientIDRotations},
		{"cookies_finalized", steamlogin.MetricCookiesFinalized},
		{"finalize_failures", steamlogin.MetricCookieFinalizeFailure},
		{"transfer_failures", steamlogin.MetricTransferFailure},
	}
	for _, line := range lines {
		fmt.Printf("%-18s %d\n", line.name, snap.Counters[line.id])
	}
	fmt.Printf("%-18s %v\n", "duration_buckets", snap.Histograms[steamlogin.MetricLoginDuration])
}

// ---------------------------------------------------------------------------
// Local finalize/transfer endpoints
// ---------------------------------------------------------------------------

func startLocalSteamWeb() (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	base := "http://" + ln.Addr().String()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /jwt/finalizelogin", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"steamID": "0",
			"transfer_info": []map[string]any{
				{"url": base + "/transfer-flaky", "params": map[string]string{"auth": "sim"}},
				{"url": base + "/transfer-steady", "params": map[string]string{"auth": "sim"}},
			},
		})
	})
	mux.HandleFunc("POST /transfer-flaky", func(w http.ResponseWriter, _ *http.Request) {
		// No cookies on purpose; the racing path has to fall through to the
		// steady endpoint.
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /transfer-steady", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "0123456789abcdef01234567"})
		http.SetCookie(w, &http.Cookie{Name: "steamLoginSecure", Value: r.PostFormValue("steamID") + "%7C%7Csim"})
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(ln) }()

	return base + "/jwt/finalizelogin", func() { _ = srv.Close() }, nil
}

// ---------------------------------------------------------------------------
// Scripted AuthClient
// ---------------------------------------------------------------------------

type simAuthClient struct {
	steamID   steamid.SteamID
	secret    []byte
	delay     time.Duration
	wantGuard bool
	wantFail  bool

	mu  sync.Mutex
	rng *rand.Rand
}

func newSimAuthClient(delay time.Duration, wantGuard, wantFail bool, seed int64) *simAuthClient {
	rng := rand.New(rand.NewSource(seed))
	return &simAuthClient{
		steamID:   steamid.FromAccountID(uint32(rng.Int31()) + 1),
		secret:    []byte("steamlogin-sim-secret"),
		delay:     delay,
		wantGuard: wantGuard,
		wantFail:  wantFail,
		rng:       rng,
	}
}

func (c *simAuthClient) pause() {
	if c.delay <= 0 {
		return
	}
	c.mu.Lock()
	jitter := time.Duration(c.rng.Int63n(int64(c.delay) + 1))
	c.mu.Unlock()
	time.Sleep(c.delay/2 + jitter)
}

func (c *simAuthClient) EncryptPassword(_ context.Context, _, _ string) (steamlogin.EncryptedPassword, error) {
	c.pause()
	return steamlogin.EncryptedPassword{
		Encrypted: "sealed",
		Timestamp: uint64(time.Now().Unix()),
	}, nil
}

func (c *simAuthClient) StartSessionWithCredentials(_ context.Context, _ steamlogin.StartSessionParams) (*steamlogin.SessionStartResponse, error) {
	c.pause()
	if c.wantFail {
		return nil, &steamlogin.ResultError{Code: steamlogin.EResultInvalidPassword}
	}

	var confirmations []steamlogin.GuardChallenge
	if c.wantGuard {
		confirmations = []steamlogin.GuardChallenge{
			{Type: steamlogin.GuardEmailCode, Message: "s***@example.com"},
		}
	}

	c.mu.Lock()
	clientID := uint64(c.rng.Int63())
	c.mu.Unlock()

	return &steamlogin.SessionStartResponse{
		ClientID:             clientID,
		RequestID:            []byte(uuid.NewString()),
		SteamID:              c.steamID,
		Interval:             1,
		AllowedConfirmations: confirmations,
	}, nil
}

func (c *simAuthClient) PollLoginStatus(context.Context, steamlogin.PollParams) (*steamlogin.PollResult, error) {
	c.pause()

	access, err := c.mintToken("web")
	if err != nil {
		return nil, err
	}
	refresh, err := c.mintToken("renew")
	if err != nil {
		return nil, err
	}

	return &steamlogin.PollResult{
		AccessToken:  access,
		RefreshToken: refresh,
		AccountName:  "simulated",
	}, nil
}

func (c *simAuthClient) SubmitSteamGuardCode(_ context.Context, _ steamlogin.GuardCodeParams) error {
	c.pause()
	return nil
}

func (c *simAuthClient) CheckMachineAuthOrSendCodeEmail(context.Context, steamlogin.MachineAuthParams) (*steamlogin.MachineAuthResult, error) {
	c.pause()
	return &steamlogin.MachineAuthResult{Result: steamlogin.EResultExpired}, nil
}

func (c *simAuthClient) mintToken(audience string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   c.steamID.String(),
		Issuer:    "sim",
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}
