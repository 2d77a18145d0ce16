// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build android

// Command bridgeapp is an Android app that runs a software rendering
// session through the host lifecycle adapter, showing its frames
// with OpenGL ES.
package main

import (
	"context"
	"log"
	"log/slog"

	"cogentcore.org/bridge/assets"
	"cogentcore.org/bridge/base/errors"
	"cogentcore.org/bridge/base/logx"
	"cogentcore.org/bridge/bridge"
	"cogentcore.org/bridge/host"
	"cogentcore.org/bridge/host/mobile"
	"cogentcore.org/bridge/native/software"
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

func main() {
	logx.SetDefaultLogger()
	app.Main(func(a app.App) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		adapter := host.NewAdapter(software.New(software.Options{}))
		adapter.Start(ctx)
		v := &view{app: a}
		tr := mobile.NewTranslator(adapter, assets.Mobile(), v.attach)

		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				err := tr.Lifecycle(e)
				if errors.Is(err, bridge.ErrBackendInit) {
					log.Fatalf("bridgeapp: %v", err)
				}
				if err != nil {
					slog.Error("bridgeapp: lifecycle", "event", e, "err", err)
				}
				if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOff {
					v.release()
				}
			case size.Event:
				v.resize(e)
				errors.Log(tr.Size(e))
			case paint.Event:
				if e.External || !v.ready() {
					continue
				}
				v.paint()
				a.Publish()
			}
		}
	})
}
