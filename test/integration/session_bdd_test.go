//go:build integration

package integration

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/agaspari/Understandly-Lockdown/internal/app"
	"github.com/agaspari/Understandly-Lockdown/internal/config"
	"github.com/agaspari/Understandly-Lockdown/internal/deeplink"
	"github.com/agaspari/Understandly-Lockdown/internal/display"
	"github.com/agaspari/Understandly-Lockdown/internal/lifecycle"
	"github.com/agaspari/Understandly-Lockdown/test/fixtures"
)

type recordingHook struct {
	installed bool
}

func (h *recordingHook) Install() error { h.installed = true; return nil }
func (h *recordingHook) Active() bool   { return h.installed }

type recordingValve struct {
	registered bool
}

func (v *recordingValve) Register() error { v.registered = true; return nil }

type singleDisplay struct{}

func (singleDisplay) Count() int     { return 1 }
func (singleDisplay) Multiple() bool { return false }

const sessionConfig = `{
  "base_url": "http://localhost:5173",
  "production_url": "https://app.understandly.com",
  "window": {
    "title": "Understandly Lockdown",
    "fullscreen": true,
    "always_on_top": true,
    "skip_taskbar": true
  },
  "debug_settings": {
    "enable_emergency_exit": false
  }
}`

var _ = Describe("Lockdown Session", func() {
	var (
		tmpDir   string
		cfg      *config.Config
		win      *fixtures.FakeWindow
		hook     *recordingHook
		valve    *recordingValve
		listener *deeplink.Listener
		socket   string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "lockdown-integration-*")
		Expect(err).NotTo(HaveOccurred())

		configFile := filepath.Join(tmpDir, "lockdown.config.json")
		Expect(os.WriteFile(configFile, []byte(sessionConfig), 0644)).To(Succeed())

		cfg, err = config.Load(configFile)
		Expect(err).NotTo(HaveOccurred())

		socket = filepath.Join(tmpDir, "dl.sock")
		listener, err = deeplink.NewListenerAt(socket, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		win = fixtures.NewFakeWindow()
		hook = &recordingHook{}
		valve = &recordingValve{}
	})

	AfterEach(func() {
		listener.Close()
		os.RemoveAll(tmpDir)
	})

	newApp := func(profile config.Profile) *app.App {
		a, err := app.New(app.Options{
			Config:    cfg,
			Profile:   profile,
			Window:    win,
			Hook:      hook,
			Valve:     valve,
			Census:    singleDisplay{},
			Recorders: display.NewRecorderScan(zap.NewNop()),
			DeepLinks: listener.URIs(),
			Logger:    zap.NewNop(),
			Exit:      func(int) {},
		})
		Expect(err).NotTo(HaveOccurred())
		return a
	}

	Describe("startup", func() {
		Context("without a cold-start deep link", func() {
			It("should navigate to the configured origin with the content policy attached first", func() {
				Expect(newApp(config.ProfileDev).Run("")).To(Succeed())

				nav, err := win.LastNavigation()
				Expect(err).NotTo(HaveOccurred())
				Expect(nav).To(Equal("http://localhost:5173"))

				Expect(win.CallIndex("init-script")).To(BeNumerically(">=", 0))
				Expect(win.CallIndex("init-script")).To(BeNumerically("<", win.CallIndex("navigate:")))
				Expect(hook.installed).To(BeTrue())
			})
		})

		Context("with a cold-start deep link", func() {
			It("should localize it onto the origin", func() {
				Expect(newApp(config.ProfileDev).Run("understandly://exam/session/42?token=x")).To(Succeed())

				nav, err := win.LastNavigation()
				Expect(err).NotTo(HaveOccurred())
				Expect(nav).To(Equal("http://localhost:5173/exam/session/42?token=x"))
			})
		})
	})

	Describe("runtime deep links", func() {
		It("should navigate the existing window in place", func() {
			Expect(newApp(config.ProfileDev).Run("")).To(Succeed())

			Expect(deeplink.ForwardTo(socket, "understandly://review/7")).To(Succeed())

			Eventually(func() string {
				js, _ := win.LastEval()
				return js
			}, 3*time.Second, 20*time.Millisecond).Should(
				Equal(`window.location.replace("http://localhost:5173/review/7")`))
		})
	})

	Describe("escape valve gating", func() {
		Context("in a dev build", func() {
			It("should arm the valve even with the flag off", func() {
				Expect(newApp(config.ProfileDev).Run("")).To(Succeed())
				Expect(valve.registered).To(BeTrue())
			})
		})

		Context("in a production build with the flag off", func() {
			It("should leave the valve unarmed and serve the production origin", func() {
				Expect(newApp(config.ProfileProduction).Run("")).To(Succeed())
				Expect(valve.registered).To(BeFalse())

				nav, err := win.LastNavigation()
				Expect(err).NotTo(HaveOccurred())
				Expect(nav).To(Equal("https://app.understandly.com"))
			})
		})
	})

	Describe("window lifecycle enforcement", func() {
		It("should veto every close request and refocus on every focus loss", func() {
			guard := lifecycle.NewGuard(zap.NewNop())

			for i := 0; i < 5; i++ {
				Expect(guard.React(lifecycle.WindowEvent{Kind: lifecycle.CloseRequested})).
					To(Equal(lifecycle.VetoClose))
			}

			// Apply reactions the way a windowing adapter does.
			for i := 0; i < 3; i++ {
				if guard.React(lifecycle.WindowEvent{Kind: lifecycle.FocusLost}) == lifecycle.Refocus {
					win.Focus()
				}
			}
			Expect(win.FocusCount).To(Equal(3))
		})
	})

	Describe("content-layer commands", func() {
		It("should expose exit and display queries", func() {
			Expect(newApp(config.ProfileDev).Run("")).To(Succeed())

			Expect(win.Bindings).To(HaveKey("closeApp"))
			Expect(win.Bindings).To(HaveKey("closeLockdown"))

			count := win.Bindings["displayCount"].(func() int)
			Expect(count()).To(Equal(1))

			multiple := win.Bindings["hasMultipleDisplays"].(func() bool)
			Expect(multiple()).To(BeFalse())

			closeApp := win.Bindings["closeApp"].(func())
			closeApp()
			Expect(win.Terminated).To(BeTrue())
		})
	})
})
