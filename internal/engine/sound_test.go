package engine_test

import (
	"testing"

	"github.com/kode4food/flagstaff/internal/assert"
	"github.com/kode4food/flagstaff/internal/assert/helpers"
	"github.com/kode4food/flagstaff/internal/engine"
	"github.com/kode4food/flagstaff/pkg/api"
)

func soundMenu(name string) helpers.BlockOption {
	return helpers.Menu("SOUND_MENU", api.OpSoundsMenu, "SOUND_MENU", name)
}

func TestPlayUntilDone(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.Sound(cat, "meow", "meow.wav")
	hat := helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpPlaySoundUntilDone, soundMenu("meow")),
		helpers.Do(api.OpSetX, helpers.Num("X", 42)),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		env.Assets["meow.wav"] = []byte("RIFF")
		s := env.Sprite(t, "Cat")
		ch := env.Chain(t, "Cat", hat.ID)

		env.Flag()
		as.Equal([]int{0}, env.Audio.Played())

		env.Ticks(7)
		as.Queued(env.Engine, ch)
		as.Equal(0.0, s.X)

		env.Audio.Finish(0)
		env.Ticks(1)
		as.Equal(42.0, s.X)
		as.NotQueued(env.Engine, ch)
	})
}

func TestPlayMissingSoundContinues(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.Sound(cat, "broken", "broken.wav")
	helpers.Sound(cat, "absent", "absent.wav")
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpPlaySoundUntilDone, soundMenu("broken")),
		helpers.Do(api.OpPlaySoundUntilDone, soundMenu("absent")),
		helpers.Do(api.OpPlaySoundUntilDone, soundMenu("unknown")),
		helpers.Do(api.OpSetX, helpers.Num("X", 1)),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		env.Assets["broken.wav"] = helpers.FailingTrack

		env.Flag()
		as.SpriteAt(env.Sprite(t, "Cat"), 1, 0)
		as.Empty(env.Audio.Played())
	})
}

func TestSoundManager(t *testing.T) {
	as := assert.New(t)
	player := helpers.NewMockAudio()
	assets := helpers.MapAssets{"a.wav": []byte("a"), "bad.wav": helpers.FailingTrack}
	m := engine.NewSoundManager(player, assets, 4)

	good := &api.Sound{Name: "a", FullName: "a.wav"}
	id, err := m.Load(good)
	as.NoError(err)
	again, err := m.Load(good)
	as.NoError(err)
	as.Equal(id, again)
	as.Equal(1, player.Loaded())

	_, err = m.Load(&api.Sound{Name: "bad", FullName: "bad.wav"})
	as.ErrorIs(err, engine.ErrSoundDecode)
	_, err = m.Load(&api.Sound{Name: "gone", ID: "gone", DataFormat: "wav"})
	as.ErrorIs(err, engine.ErrSoundMissing)

	id, ok := m.Play(good)
	as.True(ok)
	as.True(m.IsPlaying(id))
	as.Equal(1, m.Playing())

	player.Finish(id)
	m.Update()
	as.False(m.IsPlaying(id))
	as.Equal(0, m.Playing())

	id, _ = m.Play(good)
	m.Stop(id)
	as.False(m.IsPlaying(id))
	as.False(m.IsPlaying(-1))
}

func TestSoundLookup(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.Sound(cat, "one", "1.wav")
	helpers.Sound(cat, "two", "2.wav")

	helpers.WithEngine(t, helpers.NewProject(cat), func(eng *engine.Engine) {
		as := assert.New(t)
		m := engine.NewSoundManager(helpers.NewMockAudio(), helpers.MapAssets{}, 1)
		s := eng.World().Original("Cat")

		as.Equal("two", m.Lookup(s, api.Str("two")).Name)
		as.Equal("one", m.Lookup(s, api.Num(1)).Name)
		as.Equal("two", m.Lookup(s, api.Num(4)).Name)
		as.Equal("two", m.Lookup(s, api.Num(0)).Name)
		as.Nil(m.Lookup(s, api.Str("three")))
		as.Nil(m.Lookup(eng.World().Stage(), api.Num(1)))
	})
}

func TestVolumeAndEffects(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpChangeVolumeBy, helpers.Num("VOLUME", -30)),
		helpers.Do(api.OpSetSoundEffect,
			helpers.Field("EFFECT", "PITCH"), helpers.Num("VALUE", 500),
		),
		helpers.Do(api.OpChangeSoundEffect,
			helpers.Field("EFFECT", "PAN"), helpers.Num("VALUE", -20),
		),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		env.Flag()
		s := env.Sprite(t, "Cat")
		as.Equal(70.0, s.Volume())
		as.Equal(360.0, s.SoundEffects["pitch"])
		as.Equal(-20.0, s.SoundEffects["pan"])
	})
}

func TestSoundCacheEvictionReleasesTracks(t *testing.T) {
	as := assert.New(t)
	player := helpers.NewMockAudio()
	assets := helpers.MapAssets{"a.wav": []byte("a"), "b.wav": []byte("b")}
	m := engine.NewSoundManager(player, assets, 1)

	a := &api.Sound{Name: "a", FullName: "a.wav"}
	b := &api.Sound{Name: "b", FullName: "b.wav"}
	for range 10 {
		_, err := m.Load(a)
		as.NoError(err)
		_, err = m.Load(b)
		as.NoError(err)
	}
	as.Equal(2, player.Loaded())

	id, ok := m.Play(a)
	as.True(ok)
	as.Equal(1, m.Playing())
	_, err := m.Load(b)
	as.NoError(err)
	_, err = m.Load(a)
	as.NoError(err)
	as.False(m.IsPlaying(id))
	as.Equal(0, m.Playing())
	as.Equal(2, player.Loaded())
}
