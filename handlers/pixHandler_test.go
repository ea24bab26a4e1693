package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"CONVITE_GO/metric"
	"CONVITE_GO/pix"
	"CONVITE_GO/qrcode"
)

var testMerchant = pix.Merchant{PixKey: "04355073700", Name: "RECEBEDOR PIX", City: "SAO PAULO"}

const goldenPayload = "00020101021226430014BR.GOV.BCB.PIX0111043550737000206Panela520400005303986540549.905802BR5913RECEBEDOR PIX6009SAO PAULO62160512PIX-ABC123456304F871"

func TestPixHandler(t *testing.T) {
	metrics := metric.New()
	h := PixHandler(pix.NewBuilder(testMerchant), qrcode.NewRenderer(128), metrics, testLog)

	for _, body := range []string{
		`{"amount":49.9,"description":"Panela","txId":"PIX-ABC12345"}`,
		`{"amount":"49.90","description":"Panela","txId":"PIX-ABC12345"}`,
	} {
		rec, resp := serve(t, "/api/pix", h, http.MethodPost, "/api/pix", body)

		assert.Equal(t, http.StatusOK, rec.Code, body)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, goldenPayload, resp["payload"])
		assert.Equal(t, 49.9, resp["amount"])
		assert.Equal(t, "PIX-ABC12345", resp["txId"])
		assert.True(t, strings.HasPrefix(resp["qrCode"].(string), "data:image/png;base64,"))
	}

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "pix_payloads_generated_total 2")
}

func TestPixHandler_GeneratesTxID(t *testing.T) {
	h := PixHandler(pix.NewBuilder(testMerchant, pix.WithIDSource(func() string { return "PIX-0000AAAA" })),
		qrcode.NewRenderer(128), metric.New(), testLog)

	rec, resp := serve(t, "/api/pix", h, http.MethodPost, "/api/pix", `{"amount":10}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PIX-0000AAAA", resp["txId"])
	assert.Contains(t, resp["payload"], "0512PIX-0000AAAA")
}

func TestPixHandler_InvalidAmount(t *testing.T) {
	h := PixHandler(pix.NewBuilder(testMerchant), qrcode.NewRenderer(128), metric.New(), testLog)

	for _, body := range []string{`{}`, `{"amount":0}`, `{"amount":-5}`, `{"amount":"abc"}`, `{"amount":""}`, `not json`,
		`{"amount":1e100}`, `{"amount":"10000000000.00"}`, `{"amount":0.001}`} {
		rec, resp := serve(t, "/api/pix", h, http.MethodPost, "/api/pix", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, false, resp["success"], body)
	}
}

func TestMbwayHandler(t *testing.T) {
	h := MbwayHandler(qrcode.NewRenderer(128), metric.New(), testLog)

	rec, resp := serve(t, "/api/mbway", h, http.MethodPost, "/api/mbway",
		`{"amount":"25.5","phone":"+351 912 345 678","description":"Jantar","txId":"MB-1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MBWAY|phone:351912345678|amount:25.50|txid:MB-1|desc:Jantar", resp["payload"])
	assert.Equal(t, "351912345678", resp["phone"])
	assert.Equal(t, 25.5, resp["amount"])
	assert.Equal(t, "Jantar", resp["description"])
	assert.NotEmpty(t, resp["qrCode"])
}

func TestMbwayHandler_Invalid(t *testing.T) {
	h := MbwayHandler(qrcode.NewRenderer(128), metric.New(), testLog)

	for _, body := range []string{`{"amount":10,"phone":"123"}`, `{"amount":0,"phone":"912345678"}`} {
		rec, resp := serve(t, "/api/mbway", h, http.MethodPost, "/api/mbway", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, false, resp["success"])
	}
}
