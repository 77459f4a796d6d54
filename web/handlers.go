package web

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/rig2d/config"
	"github.com/mogaika/rig2d/gltfexport"
	"github.com/mogaika/rig2d/rig"
	"github.com/mogaika/rig2d/utils"
	"github.com/mogaika/rig2d/webutils"
)

type ajaxBone struct {
	Name   string  `json:"name"`
	Parent string  `json:"parent,omitempty"`
	Length float32 `json:"length"`
}

type ajaxSlot struct {
	Name       string `json:"name"`
	Bone       string `json:"bone"`
	Attachment string `json:"attachment,omitempty"`
}

type ajaxSkeleton struct {
	Name       string     `json:"name"`
	Bones      []ajaxBone `json:"bones"`
	Slots      []ajaxSlot `json:"slots"`
	Skins      []string   `json:"skins"`
	Animations []string   `json:"animations"`
}

func HandlerAjaxSkeleton(w http.ResponseWriter, r *http.Request) {
	var result ajaxSkeleton
	ServerPlayer.WithSkeleton(func(skeleton *rig.Skeleton) {
		data := skeleton.Data
		result.Name = data.Name
		for _, boneData := range data.Bones {
			b := ajaxBone{Name: boneData.Name, Length: boneData.Length}
			if boneData.Parent != nil {
				b.Parent = boneData.Parent.Name
			}
			result.Bones = append(result.Bones, b)
		}
		for _, slotData := range data.Slots {
			result.Slots = append(result.Slots, ajaxSlot{
				Name:       slotData.Name,
				Bone:       slotData.BoneData.Name,
				Attachment: slotData.AttachmentName,
			})
		}
		for _, skin := range data.Skins {
			result.Skins = append(result.Skins, skin.Name)
		}
		for _, animation := range data.Animations {
			result.Animations = append(result.Animations, animation.Name)
		}
	})
	webutils.WriteJson(w, &result)
}

type ajaxAnimation struct {
	Name     string  `json:"name"`
	Duration float32 `json:"duration"`
}

func HandlerAjaxAnimations(w http.ResponseWriter, r *http.Request) {
	var result []ajaxAnimation
	ServerPlayer.WithSkeleton(func(skeleton *rig.Skeleton) {
		for _, animation := range skeleton.Data.Animations {
			result = append(result, ajaxAnimation{Name: animation.Name, Duration: animation.Duration})
		}
	})
	webutils.WriteJson(w, result)
}

func HandlerAjaxPose(w http.ResponseWriter, r *http.Request) {
	pose := SnapshotPose(ServerPlayer)
	webutils.WriteJson(w, pose)
}

func HandlerActionPlay(w http.ResponseWriter, r *http.Request) {
	anim := mux.Vars(r)["anim"]
	loop := r.URL.Query().Get("loop") != "0"
	if err := ServerPlayer.Play(anim, loop); err != nil {
		log.Printf("[web] Play %q error: %v", anim, err)
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, map[string]string{"playing": anim})
}

func HandlerActionQueue(w http.ResponseWriter, r *http.Request) {
	anim := mux.Vars(r)["anim"]
	loop := r.URL.Query().Get("loop") != "0"
	delay := float32(0)
	if s := r.URL.Query().Get("delay"); s != "" {
		d, err := strconv.ParseFloat(s, 32)
		if err != nil {
			webutils.WriteError(w, fmt.Errorf("delay '%s' is not a number", s))
			return
		}
		delay = float32(d)
	}
	if err := ServerPlayer.Queue(anim, loop, delay); err != nil {
		log.Printf("[web] Queue %q error: %v", anim, err)
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, map[string]string{"queued": anim})
}

func HandlerActionStop(w http.ResponseWriter, r *http.Request) {
	ServerPlayer.Stop(config.Get().DefaultMix)
	webutils.WriteJson(w, map[string]string{"stopped": "ok"})
}

func HandlerDumpSkeleton(w http.ResponseWriter, r *http.Request) {
	var dump string
	ServerPlayer.WithSkeleton(func(skeleton *rig.Skeleton) {
		dump = utils.SDump(skeleton.Data)
	})
	w.Header().Set("Content-Type", "text/plain")
	webutils.WriteResult(w, []byte(dump))
}

func HandlerDumpGltf(w http.ResponseWriter, r *http.Request) {
	var doc *gltf.Document
	var err error
	ServerPlayer.WithSkeleton(func(skeleton *rig.Skeleton) {
		doc, err = gltfexport.ExportPose(skeleton)
	})
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFileHeaders(w, "pose.gltf")
	if err := gltf.NewEncoder(w).Encode(doc); err != nil {
		log.Printf("[web] gltf encode error: %v", err)
	}
}
