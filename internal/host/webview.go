package host

import (
	"errors"

	webview "github.com/webview/webview_go"
	"go.uber.org/zap"

	"github.com/agaspari/Understandly-Lockdown/internal/config"
	"github.com/agaspari/Understandly-Lockdown/internal/lifecycle"
)

// WebviewWindow adapts the webview host to the Window boundary and applies
// the lockdown window-chrome contract to the native handle.
type WebviewWindow struct {
	wv     webview.WebView
	logger *zap.Logger
}

// NewWebviewWindow creates the single top-level lockdown window. The
// lifecycle guard is consulted synchronously from native window dispatch
// for close requests and focus transitions.
//
// Failure to construct the window is fatal: no lockdown guarantee can be
// claimed without it. Failure to apply native chrome or lifecycle
// interception is degraded-but-running and only logged.
func NewWebviewWindow(cfg config.WindowConfig, guard lifecycle.Reactor, logger *zap.Logger) (*WebviewWindow, error) {
	wv := webview.New(false)
	if wv == nil {
		return nil, errors.New("host window construction failed")
	}

	w := &WebviewWindow{wv: wv, logger: logger}
	wv.SetTitle(cfg.Title)
	wv.SetSize(1280, 800, webview.HintFixed)

	if err := applyChrome(w.Handle(), cfg); err != nil {
		logger.Warn("window chrome contract not fully applied", zap.Error(err))
	}
	if err := watchLifecycle(w.Handle(), guard); err != nil {
		logger.Warn("window lifecycle interception unavailable", zap.Error(err))
	}
	return w, nil
}

func (w *WebviewWindow) Run()       { w.wv.Run() }
func (w *WebviewWindow) Terminate() { w.wv.Terminate() }

// Destroy releases the underlying webview after the UI loop has exited.
func (w *WebviewWindow) Destroy() { w.wv.Destroy() }

func (w *WebviewWindow) Dispatch(f func())    { w.wv.Dispatch(f) }
func (w *WebviewWindow) Navigate(url string)  { w.wv.Navigate(url) }
func (w *WebviewWindow) Eval(js string)       { w.wv.Eval(js) }
func (w *WebviewWindow) InitScript(js string) { w.wv.Init(js) }

func (w *WebviewWindow) Bind(name string, fn interface{}) error {
	return w.wv.Bind(name, fn)
}

func (w *WebviewWindow) Focus() {
	focusNative(w.Handle())
}

func (w *WebviewWindow) Handle() uintptr {
	return uintptr(w.wv.Window())
}
