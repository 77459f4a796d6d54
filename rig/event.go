package rig

// EventData is the setup definition of a user event keyed in animations.
type EventData struct {
	Name        string
	IntValue    int
	FloatValue  float32
	StringValue string

	AudioPath string
	Volume    float32
	Balance   float32
}

// Event is one fired occurrence of an EventData at a point in time.
// Payload fields default to the EventData values unless the keyframe
// overrides them.
type Event struct {
	Data *EventData
	Time float32

	IntValue    int
	FloatValue  float32
	StringValue string
	Volume      float32
	Balance     float32
}

func NewEvent(time float32, data *EventData) *Event {
	return &Event{
		Data:        data,
		Time:        time,
		IntValue:    data.IntValue,
		FloatValue:  data.FloatValue,
		StringValue: data.StringValue,
		Volume:      data.Volume,
		Balance:     data.Balance,
	}
}
