package attack

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"sync/atomic"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

var (
	urlCounter atomic.Uint64
	bodyPool   = sync.Pool{
		New: func() any {
			return make([]byte, 0, 64)
		},
	}
)

func CreateTargeter(baseURL string) vegeta.Targeter {
	header := http.Header{"Content-Type": []string{"application/json"}}
	url := baseURL + "/links"

	return func(t *vegeta.Target) error {
		t.Method = http.MethodPost
		t.URL = url
		t.Header = header

		buf := bodyPool.Get().([]byte)[:0]
		buf = fmt.Appendf(buf, `{"targetUrl":"https://example.com/%d"}`, urlCounter.Add(1))
		t.Body = buf
		return nil
	}
}

func RedirectTargeter(baseURL string, codes []string) vegeta.Targeter {
	return func(t *vegeta.Target) error {
		code := codes[rand.IntN(len(codes))]
		t.Method = http.MethodGet
		t.URL = baseURL + "/" + code
		return nil
	}
}

func MixedTargeter(baseURL string, codes []string, createRatio float64) vegeta.Targeter {
	createTarget := CreateTargeter(baseURL)
	redirectTarget := RedirectTargeter(baseURL, codes)

	return func(t *vegeta.Target) error {
		if rand.Float64() < createRatio {
			return createTarget(t)
		}
		return redirectTarget(t)
	}
}
