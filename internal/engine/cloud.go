package engine

import (
	"log/slog"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
)

// SetVariable assigns a variable, mirroring cloud variables to the cloud
// store
func (e *Engine) SetVariable(v *api.Variable, val api.Value) {
	v.Value = val
	if !v.Cloud {
		return
	}
	if e.cloud != nil {
		e.cloud.Set(v.Name, val)
	}
	e.publishVariable(v)
}

func (e *Engine) applyCloudUpdate(name string, val api.Value) {
	st := e.world.Stage()
	if st == nil {
		return
	}
	v := findVariable(st.Variables, "", name)
	if v == nil || !v.Cloud {
		slog.Debug("Cloud update for unknown variable",
			slog.String("variable", name))
		return
	}
	v.Value = val
	e.publishVariable(v)
}

func (e *Engine) publishVariable(v *api.Variable) {
	slog.Debug("Variable changed",
		log.Sprite(StageName),
		slog.String("variable", v.Name))
	e.publish(&api.Event{
		Type: api.EventTypeVariableChanged,
		Data: map[string]any{
			"name":  v.Name,
			"value": v.Value.Interface(),
		},
	})
}
