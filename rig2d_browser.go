package main

import (
	"flag"
	"log"
	"time"

	"github.com/mogaika/rig2d/animstate"
	"github.com/mogaika/rig2d/config"
	"github.com/mogaika/rig2d/demo"
	"github.com/mogaika/rig2d/player"
	"github.com/mogaika/rig2d/rig"
	"github.com/mogaika/rig2d/web"
)

func main() {
	var addr, cfgpath, anim string
	var mix float64
	flag.StringVar(&addr, "i", "", "Address of server, overrides config")
	flag.StringVar(&cfgpath, "cfg", "", "Path to yaml config file")
	flag.StringVar(&anim, "anim", "idle", "Animation to play on start")
	flag.Float64Var(&mix, "mix", -1, "Default crossfade duration, overrides config")
	flag.Parse()

	if cfgpath != "" {
		if err := config.Load(cfgpath); err != nil {
			log.Fatal(err)
		}
	}
	cfg := config.Get()
	if addr != "" {
		cfg.Listen = addr
	}
	if mix >= 0 {
		cfg.DefaultMix = float32(mix)
	}
	config.Set(cfg)

	skeletonData, err := demo.BuildSkeletonData()
	if err != nil {
		log.Fatal(err)
	}

	stateData := animstate.NewStateData(skeletonData)
	stateData.DefaultMix = cfg.DefaultMix

	p := player.NewPlayer(skeletonData, stateData)
	if cfg.SkeletonScale != 0 && cfg.SkeletonScale != 1 {
		p.WithSkeleton(func(skeleton *rig.Skeleton) {
			skeleton.ScaleX = cfg.SkeletonScale
			skeleton.ScaleY = cfg.SkeletonScale
		})
	}
	if anim != "" {
		if err := p.Play(anim, true); err != nil {
			log.Fatal(err)
		}
	}

	go func() {
		const step = time.Second / 60
		ticker := time.NewTicker(step)
		defer ticker.Stop()
		last := time.Now()
		for now := range ticker.C {
			p.Update(float32(now.Sub(last).Seconds()))
			last = now
		}
	}()

	web.StartPoseStream(p, cfg.PoseStreamFPS)

	if err := web.StartServer(cfg.Listen, p, cfg.WebDataDir); err != nil {
		log.Fatal(err)
	}
}
