package main

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/donation-board/internal/config"
	"github.com/ytget/donation-board/internal/form"
	"github.com/ytget/donation-board/internal/gateway"
	"github.com/ytget/donation-board/internal/logging"
	"github.com/ytget/donation-board/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.donation-board"
	AppName = "Donation Board"

	WindowWidth  = 960
	WindowHeight = 640
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Printf("Environment file ignored: %v", err)
	}

	logging.Setup(config.SentryDSN(), config.Environment())
	defer logging.Flush()

	log.Printf("%s v%s starting...", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)

	gw := gateway.NewService(gateway.Options{
		BaseURL: settings.GetAPIBaseURL(),
		Timeout: settings.GetRequestTimeout(),
	})
	log.Printf("Using donation API at %s", gw.BaseURL())

	controller := form.NewController(gw, form.Options{
		Rules:   form.Rules{StrictContact: settings.GetStrictContactLength()},
		OpenURL: myApp.OpenURL,
	})
	defer controller.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rootUI := ui.NewRootUI(myWindow, controller, settings)
	rootUI.Start(ctx)

	myWindow.ShowAndRun()
}
