package engine

import (
	"log/slog"
	"strings"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
)

func soundBlocks() Registry {
	return Registry{
		api.OpPlaySound:          command(playSound),
		api.OpPlaySoundUntilDone: command(playSoundUntilDone),
		api.OpStopAllSounds:      command(stopAllSounds),
		api.OpChangeSoundEffect:  command(changeSoundEffect),
		api.OpSetSoundEffect:     command(setSoundEffect),
		api.OpClearSoundEffects:  command(clearSoundEffects),
		api.OpChangeVolumeBy:     command(changeVolumeBy),
		api.OpSetVolumeTo:        command(setVolumeTo),
		api.OpVolume:             reporter(volume),
	}
}

func playSound(c *Context) Result {
	c.startSound()
	return Continue
}

func playSoundUntilDone(c *Context) Result {
	return c.Await(func() Waiter {
		id, ok := c.startSound()
		if !ok {
			return nil
		}
		sounds := c.Engine().sounds
		return WaiterFunc(func() bool {
			return !sounds.IsPlaying(id)
		})
	})
}

func stopAllSounds(c *Context) Result {
	c.Engine().sounds.StopAll()
	return Continue
}

func changeSoundEffect(c *Context) Result {
	s := c.Sprite()
	name := effectName(c.Field("EFFECT"))
	s.SoundEffects[name] = clampSoundEffect(
		name, s.SoundEffects[name]+c.Number("VALUE"),
	)
	return Continue
}

func setSoundEffect(c *Context) Result {
	s := c.Sprite()
	name := effectName(c.Field("EFFECT"))
	s.SoundEffects[name] = clampSoundEffect(name, c.Number("VALUE"))
	return Continue
}

func clearSoundEffects(c *Context) Result {
	clear(c.Sprite().SoundEffects)
	return Continue
}

func changeVolumeBy(c *Context) Result {
	s := c.Sprite()
	s.SetVolume(s.Volume() + c.Number("VOLUME"))
	return Continue
}

func setVolumeTo(c *Context) Result {
	c.Sprite().SetVolume(c.Number("VOLUME"))
	return Continue
}

func volume(c *Context) api.Value {
	return api.Num(c.Sprite().Volume())
}

func (c *Context) startSound() (int, bool) {
	s := c.Sprite()
	key := c.Input("SOUND_MENU")
	snd := c.Engine().sounds.Lookup(s, key)
	if snd == nil {
		slog.Debug("Sound not found",
			log.Sprite(s.Name),
			log.Sound(key.AsString()))
		return 0, false
	}
	return c.Engine().sounds.Play(snd)
}

func clampSoundEffect(name string, v float64) float64 {
	switch strings.ToLower(name) {
	case "pitch":
		return min(max(v, -360), 360)
	case "pan":
		return min(max(v, -100), 100)
	default:
		return v
	}
}
