package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kael37/PixelLedger/internal/model"
	"github.com/kael37/PixelLedger/internal/store"
)

func newSyncRouter(st *store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewSnapshotController(st)
	r.POST("/sync", ctrl.Sync)
	return r
}

func doSync(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/sync", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSyncWithoutBodyTakesSnapshot(t *testing.T) {
	st := store.New(nil)
	st.AddBlock("现金", model.AssetCash, 6000, "💰")
	r := newSyncRouter(st)

	w := doSync(t, r, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	logs := st.Snapshot().Logs
	if len(logs) != 1 {
		t.Fatalf("history length = %d, want 1", len(logs))
	}
	if logs[0].Memo != "" {
		t.Errorf("memo = %q, want empty", logs[0].Memo)
	}
	if logs[0].TotalAssets != 6000 {
		t.Errorf("total = %v, want 6000", logs[0].TotalAssets)
	}
}

func TestSyncWithMemo(t *testing.T) {
	st := store.New(nil)
	r := newSyncRouter(st)

	w := doSync(t, r, `{"memo":"月度结算"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Memo string `json:"memo"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != 0 || resp.Data.Memo != "月度结算" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSyncRejectsMalformedBody(t *testing.T) {
	st := store.New(nil)
	r := newSyncRouter(st)

	w := doSync(t, r, `{"memo":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(st.Snapshot().Logs) != 0 {
		t.Errorf("malformed body must not record a snapshot")
	}
}
