// Package app 提供轮播演示程序的应用包装器
//
// 该包把设置存储、多任务视图会话、手势识别和渲染组装成一个 ebiten.Game，
// main 包只负责解析参数。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/host"
	"github.com/gonewx/carousel/pkg/settings"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "carousel_demo"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Width, Height 逻辑屏幕尺寸
	Width, Height int
	// Tasks 卡片数量
	Tasks int
	// Profiles 可切换的效果配置档，按数字键 1-9 选择
	Profiles []*config.CarouselProfile
	// Persist 是否通过 gdata 持久化设置
	Persist bool
}

// App 轮播演示应用，实现 ebiten.Game 接口
type App struct {
	cfg      Config
	settings *settings.Manager
	session  *host.Session
	gestures *host.GestureRecognizer
	renderer *host.Renderer

	profile                  string
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

var taskPalette = []color.NRGBA{
	{R: 66, G: 133, B: 244, A: 255},
	{R: 219, G: 68, B: 55, A: 255},
	{R: 244, G: 180, B: 0, A: 255},
	{R: 15, G: 157, B: 88, A: 255},
	{R: 171, G: 71, B: 188, A: 255},
	{R: 0, G: 172, B: 193, A: 255},
}

var profileKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

var taskTitles = []string{"Browser", "Mail", "Maps", "Camera", "Music", "Notes", "Photos", "Chat", "Clock"}

// NewApp 创建并初始化演示应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid screen size %dx%d", cfg.Width, cfg.Height)
	}

	var gdataManager *gdata.Manager
	if cfg.Persist {
		m, err := gdata.Open(gdata.Config{AppName: AppName})
		if err != nil {
			// 存储不可用时降级为内存设置
			log.Printf("[App] Warning: gdata unavailable: %v", err)
		} else {
			gdataManager = m
		}
	}
	settingsManager, err := settings.NewManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}

	view := host.NewRecentsView(float64(cfg.Width), float64(cfg.Height))
	for i := 0; i < cfg.Tasks; i++ {
		title := taskTitles[i%len(taskTitles)]
		c := taskPalette[i%len(taskPalette)]
		if i == 2 {
			view.AddTask(host.NewGroupedTaskView(i, title+" | Split", c))
			continue
		}
		view.AddTask(host.NewTaskView(i, title, c))
	}
	session := host.NewSession(view, settingsManager, nil)

	a := &App{
		cfg:      cfg,
		settings: settingsManager,
		session:  session,
		gestures: host.NewGestureRecognizer(session, float64(cfg.Height)),
		renderer: host.NewRenderer(),
	}
	if len(cfg.Profiles) > 0 {
		a.applyProfile(cfg.Profiles[0])
	}
	log.Printf("[App] Initialized with %d tasks, %d profiles", cfg.Tasks, len(cfg.Profiles))
	return a, nil
}

// Session 返回多任务会话
func (a *App) Session() *host.Session { return a.session }

// Settings 返回设置管理器
func (a *App) Settings() *settings.Manager { return a.settings }

// applyProfile 把配置档写入设置存储，效果在下一帧生效
func (a *App) applyProfile(p *config.CarouselProfile) {
	p.Apply(a.settings)
	a.profile = p.Name
	log.Printf("[App] Profile %q applied", p.Name)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Width, a.cfg.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.handleKeys()
	a.gestures.Update(host.PollPointer())
	a.session.Tick()
	return nil
}

func (a *App) handleKeys() {
	s := a.session
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if s.View().Visible() {
			s.Close()
		} else {
			s.Open()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		// 模拟一次停在多任务的上滑
		s.BeginGesture()
		s.EndGesture(host.TargetRecents)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		s.ScrollTo(a.centerIndex() - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		s.ScrollTo(a.centerIndex() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		s.Launch(s.CenterTask())
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		s.GoHome()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		enabled := a.settings.Bool(config.KeyModifyEnable, false)
		a.settings.SetBool(config.KeyModifyEnable, !enabled)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Failed to save settings: %v", err)
		}
	}

	for i, p := range a.cfg.Profiles {
		if i >= len(profileKeys) {
			break
		}
		if inpututil.IsKeyJustPressed(profileKeys[i]) {
			a.applyProfile(p)
		}
	}
}

func (a *App) centerIndex() int {
	t := a.session.CenterTask()
	if t == nil {
		return 0
	}
	for i, task := range a.session.View().Tasks() {
		if task == t {
			return i
		}
	}
	return 0
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.session.View())
	host.DrawHUD(screen, a.session)
	help := fmt.Sprintf("profile: %s\n[Space] recents  [Up] swipe  [Left/Right] scroll  [Enter] launch  [H] home  [E] toggle  [1-9] profile",
		a.profile)
	ebitenutil.DebugPrintAt(screen, help, 0, a.cfg.Height-36)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Width, a.cfg.Height
}
