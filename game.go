package main

import (
	"fmt"
	"image/color"
	_ "image/png"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tanema/gween"

	"github.com/zucenko/ancienttales/client"
	"github.com/zucenko/ancienttales/config"
	"github.com/zucenko/ancienttales/model"
	"github.com/zucenko/ancienttales/view"
)

const (
	screenWidth  = 1024
	screenHeight = 768
	// a press that wanders further than this is a drag, not a click
	clickSlop = 12
	tick      = 1.0 / 60
)

var (
	COLOR_SEA      = color.RGBA{18, 52, 86, 255}
	COLOR_TEXT     = color.White
	COLOR_DIM      = color.RGBA{180, 190, 200, 255}
	COLOR_CORRECT  = color.RGBA{90, 220, 120, 255}
	COLOR_WRONG    = color.RGBA{250, 80, 80, 255}
	COLOR_HEART    = color.RGBA{230, 40, 60, 255}
	COLOR_NO_HEART = color.RGBA{240, 240, 240, 255}
)

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

// MouseStrokeSource is a StrokeSource implementation of mouse.
type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// TouchStrokeSource is a StrokeSource implementation of touch.
type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke follows one press from down to release.
type Stroke struct {
	source StrokeSource

	initX, initY       int
	currentX, currentY int

	released  bool
	cancelled bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	s.currentX, s.currentY = s.source.Position()
}

func (s *Stroke) PositionDiff() (int, int) {
	return s.currentX - s.initX, s.currentY - s.initY
}

func NewGame(cfg *config.Client) *Game {
	g := &Game{
		State:     CONNECTING,
		Config:    cfg,
		View:      view.NewState(),
		Assets:    NewAssets(cfg.Assets),
		Font:      LoadFont(cfg.Font, 22),
		TitleFont: LoadFont(cfg.Font, 50),
		pixel:     flatImage(1, color.White),
		strokes:   map[*Stroke]struct{}{},
		Tweens:    make(map[*gween.Tween]*Anim),
	}
	panel := g.Assets.Image("panel.png")
	if panel == nil {
		panel = flatImage(16, color.White)
	}
	g.Panel = NewNine(panel, 4, 1)
	g.connect()
	return g
}

// connect dials the server, rejoining the current session after a drop.
func (g *Game) connect() {
	conn, err := client.Connect(g.Config.ServerURL, g.View)
	if err != nil {
		log.Warnf("connect %v", err)
		g.State = DISCONNECTED
		g.lastError = err.Error()
		return
	}
	g.Conn = conn
	g.State = CONNECTING
	g.lastError = ""
	g.Buttons = g.View.Buttons(screenWidth, screenHeight)
}

func (g *Game) send(a model.Action) {
	if g.Conn == nil {
		return
	}
	if err := g.Conn.Send(a); err != nil {
		log.Warnf("send %s %v", a.Kind.Name(), err)
	}
}

func (g *Game) receive() {
	if g.Conn == nil {
		return
	}
	for {
		select {
		case msg := <-g.Conn.Messages:
			if g.View.Receive(msg, time.Now()) {
				g.fadeIn()
			}
			for _, out := range msg.Feedback {
				if out.Result == model.RES_CORRECT || out.Result == model.RES_WRONG {
					g.flashFeedback()
				}
			}
			g.State = PLAYING
			g.Buttons = g.View.Buttons(screenWidth, screenHeight)
		case <-g.Conn.Closed:
			g.Conn.Close()
			g.Conn = nil
			g.State = DISCONNECTED
			g.lastError = "connection lost, click to reconnect"
			return
		default:
			return
		}
	}
}

func (g *Game) click(x, y int) {
	if g.State == DISCONNECTED {
		g.connect()
		return
	}
	b, ok := view.HitTest(g.Buttons, x, y)
	if !ok {
		return
	}
	if a, send := view.Click(b, g.View.Selection); send {
		g.send(a)
	}
	g.Buttons = g.View.Buttons(screenWidth, screenHeight)
}

func (g *Game) updateStroke(stroke *Stroke) {
	stroke.Update()
	xDif, yDif := stroke.PositionDiff()
	if math.Abs(float64(xDif)) > clickSlop || math.Abs(float64(yDif)) > clickSlop {
		stroke.cancelled = true
	}
	if stroke.released && !stroke.cancelled {
		g.click(stroke.currentX, stroke.currentY)
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	g.updateTweens(tick)
	g.receive()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	for s := range g.strokes {
		g.updateStroke(s)
		if s.released {
			delete(g.strokes, s)
		}
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen)
	return nil
}

func (g *Game) draw(screen *ebiten.Image) {
	screen.Fill(COLOR_SEA)
	if g.State != PLAYING {
		msg := "Connecting to " + g.Config.ServerURL
		if g.State == DISCONNECTED {
			msg = g.lastError
		}
		text.Draw(screen, msg, g.Font, view.MARGIN, screenHeight/2, COLOR_TEXT)
		return
	}

	snap := g.View.Snapshot
	g.drawBackdrop(screen, snap)
	text.Draw(screen, snap.Backdrop.Title, g.TitleFont, view.MARGIN, 70, COLOR_TEXT)

	switch snap.Scene {
	case model.SC_SHIP_INTRO, model.SC_DIVING, model.SC_SUMMARY:
		y := view.HEADER
		for _, line := range view.Wrap(g.Font, snap.Text, screenWidth/2) {
			text.Draw(screen, line, g.Font, view.MARGIN, y, COLOR_TEXT)
			y += view.ROW_HEIGHT
		}
		if p := view.Progress(snap.Cursor, snap.Total); p != "" && snap.Scene != model.SC_SUMMARY {
			text.Draw(screen, p, g.Font, view.MARGIN, y+view.GAP, COLOR_DIM)
		}
	case model.SC_PEARL_GAME:
		g.drawHearts(screen, snap.Hearts, snap.MaxHearts)
		status := view.ScoreTime(snap.Score, g.View.Remaining(time.Now()))
		text.Draw(screen, status, g.Font, screenWidth/2, 70, COLOR_TEXT)
		if len(snap.Questions) > 0 {
			g.drawImage(screen, snap.Questions[0].Image, screenWidth*3/4-100, view.HEADER, 200, 200)
		}
	}

	for _, b := range g.Buttons {
		g.drawButton(screen, b)
	}

	if line := view.Feedback(g.View.Feedback); line != "" && g.feedbackAlpha > 0 {
		clr := COLOR_CORRECT
		if g.View.Feedback.Result == model.RES_WRONG {
			clr = COLOR_WRONG
		}
		faded := color.NRGBA{R: clr.R, G: clr.G, B: clr.B, A: uint8(255 * g.feedbackAlpha)}
		text.Draw(screen, line, g.Font, view.MARGIN, screenHeight-2*view.MARGIN-view.ROW_HEIGHT, faded)
	}

	if g.sceneAlpha < 1 {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(screenWidth, screenHeight)
		op.ColorM.Scale(0, 0, 0, 1-g.sceneAlpha)
		screen.DrawImage(g.pixel, op)
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		ebitenutil.DebugPrintAt(screen, g.State.Name()+" "+snap.Scene.String(), screenWidth-200, 0)
	}
}

func (g *Game) drawBackdrop(screen *ebiten.Image, snap model.Snapshot) {
	g.drawImage(screen, snap.Backdrop.Background, 0, 0, screenWidth, screenHeight)
	x := screenWidth - view.MARGIN
	for i := len(snap.Backdrop.Props) - 1; i >= 0; i-- {
		x -= 180
		g.drawImage(screen, snap.Backdrop.Props[i], x, screenHeight-260, 160, 160)
	}
	if snap.Scene != model.SC_PEARL_GAME {
		g.drawImage(screen, snap.Portrait, screenWidth-260, view.HEADER, 220, 260)
	}
	// the crew member stands next to the player
	g.drawImage(screen, snap.CrewPortrait, screenWidth-490, view.HEADER, 220, 260)
}

// drawImage fits the named asset into the w x h box at x, y keeping its
// aspect ratio. A missing asset leaves a flat placeholder panel.
func (g *Game) drawImage(screen *ebiten.Image, name string, x, y, w, h int) {
	if name == "" {
		return
	}
	img := g.Assets.Image(name)
	if img == nil {
		g.Panel.SetColor(.1, .3, .45, .5)
		g.Panel.SetRect(x, y, w, h)
		g.Panel.Draw(screen)
		return
	}
	iw, ih := img.Size()
	scale := math.Min(float64(w)/float64(iw), float64(h)/float64(ih))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func (g *Game) drawHearts(screen *ebiten.Image, hearts, max int) {
	const side, gap = 24, 6
	for i := 0; i < max; i++ {
		clr := COLOR_NO_HEART
		if i < hearts {
			clr = COLOR_HEART
		}
		r, gr, b, _ := clr.RGBA()
		g.Panel.SetColor(float64(r)/0xffff, float64(gr)/0xffff, float64(b)/0xffff, 1)
		g.Panel.SetRect(screenWidth/2+i*(side+gap), 90, side, side)
		g.Panel.Draw(screen)
	}
}

func (g *Game) drawButton(screen *ebiten.Image, b view.Button) {
	r := b.Rect
	if b.Image != "" {
		img := b.ImageRect()
		g.drawImage(screen, b.Image, img.X, img.Y, img.W, img.H)
	}
	if b.Kind == view.BTN_TEXT {
		text.Draw(screen, b.Label, g.Font, r.X, r.Y+r.H-view.GAP, COLOR_TEXT)
		return
	}
	switch {
	case b.Disabled:
		g.Panel.SetColor(.4, .4, .45, .6)
	case b.Selected:
		g.Panel.SetColor(.95, .8, .3, .95)
	case b.Kind == view.BTN_OPTION:
		g.Panel.SetColor(.85, .9, 1, .85)
	default:
		g.Panel.SetColor(.2, .6, .9, .95)
	}
	g.Panel.SetRect(r.X, r.Y, r.W, r.H)
	g.Panel.Draw(screen)
	clr := color.Color(color.Black)
	if b.Kind != view.BTN_OPTION && !b.Selected {
		clr = COLOR_TEXT
	}
	text.Draw(screen, b.Label, g.Font, r.X+view.GAP, r.Y+r.H-view.GAP-2, clr)
}

var rootCmd = &cobra.Command{
	Use:           "ancienttales",
	Short:         "Play Ancient Tales against a tales-server",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetupLogging(clientCfg.LogLevel, "text"); err != nil {
			return err
		}
		g := NewGame(clientCfg)
		return ebiten.Run(g.update, screenWidth, screenHeight, 1, "Ancient Tales")
	},
}

var clientCfg *config.Client

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalln(err)
	}
	clientCfg = cfg
	rootCmd.Flags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "websocket url of the /play endpoint")
	rootCmd.Flags().StringVar(&cfg.Assets, "assets", cfg.Assets, "directory holding scene images")
	rootCmd.Flags().StringVar(&cfg.Font, "font", cfg.Font, "TrueType font file")
	rootCmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
