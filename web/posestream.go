package web

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mogaika/rig2d/player"
	"github.com/mogaika/rig2d/rig"
)

type poseBone struct {
	Name     string  `json:"name"`
	WorldX   float32 `json:"x"`
	WorldY   float32 `json:"y"`
	Rotation float32 `json:"rotation"`
	ScaleX   float32 `json:"scaleX"`
	ScaleY   float32 `json:"scaleY"`
}

type poseSlot struct {
	Name       string     `json:"name"`
	Attachment string     `json:"attachment,omitempty"`
	Color      [4]float32 `json:"color"`
}

type poseSnapshot struct {
	Generation uint64     `json:"generation"`
	Bones      []poseBone `json:"bones"`
	Slots      []poseSlot `json:"slots"`
}

// SnapshotPose captures the player's current world pose.
func SnapshotPose(p *player.Player) *poseSnapshot {
	pose := &poseSnapshot{Generation: p.Generation()}
	p.WithSkeleton(func(skeleton *rig.Skeleton) {
		for _, bone := range skeleton.Bones {
			pose.Bones = append(pose.Bones, poseBone{
				Name:     bone.Data.Name,
				WorldX:   bone.WorldX,
				WorldY:   bone.WorldY,
				Rotation: bone.WorldRotationX(),
				ScaleX:   bone.WorldScaleX(),
				ScaleY:   bone.WorldScaleY(),
			})
		}
		for _, slot := range skeleton.DrawOrder {
			ps := poseSlot{Name: slot.Data.Name, Color: [4]float32(slot.Color)}
			if attachment := slot.Attachment(); attachment != nil {
				ps.Attachment = attachment.Name()
			}
			pose.Slots = append(pose.Slots, ps)
		}
	})
	return pose
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		unregisterClient(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[web] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[web] ws write ping error: %v", err)
				return
			}
		}
	}
}

var poseClients = make(map[*wsClient]bool)
var poseClientsLock sync.Mutex

func registerClient(c *wsClient) {
	poseClientsLock.Lock()
	defer poseClientsLock.Unlock()
	poseClients[c] = true
}

func unregisterClient(c *wsClient) {
	poseClientsLock.Lock()
	defer poseClientsLock.Unlock()
	if poseClients[c] {
		delete(poseClients, c)
		close(c.send)
	}
}

func broadcastPose(data []byte) {
	poseClientsLock.Lock()
	defer poseClientsLock.Unlock()
	for c := range poseClients {
		select {
		case c.send <- data:
		default:
			// Slow client, drop the frame.
		}
	}
}

// StartPoseStream broadcasts the player's pose to websocket clients at
// most fps times per second, skipping frames with no update.
func StartPoseStream(p *player.Player, fps int) {
	if fps <= 0 {
		fps = 30
	}
	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		var lastGeneration uint64
		for range ticker.C {
			generation := p.Generation()
			if generation == lastGeneration {
				continue
			}
			lastGeneration = generation
			data, err := json.Marshal(SnapshotPose(p))
			if err != nil {
				log.Printf("[web] pose marshal error: %v", err)
				continue
			}
			broadcastPose(data)
		}
	}()
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func HandlerWsPose(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}
	c := &wsClient{conn: conn, send: make(chan []byte, 8)}
	registerClient(c)
	go c.writePump()
}
