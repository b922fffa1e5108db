package platform

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppDirJoinsConfigDir(t *testing.T) {
	base := t.TempDir()
	service := &platformService{appName: AppName, baseDir: func() (string, error) { return base, nil }}

	dir, err := service.AppDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "Tempo"), dir)
}

func TestGetConfigDirFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	service := &platformService{appName: AppName, baseDir: func() (string, error) {
		return "", errors.New("no config dir")
	}}

	dir, err := service.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, fallbackConfigDir(home), dir)
}

func TestLauncherSlug(t *testing.T) {
	assert.Equal(t, "tempo", launcherSlug("Tempo"))
	assert.Equal(t, "my-timer", launcherSlug(" My Timer "))
	assert.Equal(t, "tempo", launcherSlug(""))
}

func TestSingleInstanceActivation(t *testing.T) {
	name := "tempo-test-" + t.Name()
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	defer guard.Release()

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	activated := make(chan struct{}, 1)
	guard.OnActivate(func() { activated <- struct{}{} })
	require.NoError(t, ActivateRunning(name))

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}
}

func TestReleaseFreesLock(t *testing.T) {
	name := "tempo-test-" + t.Name()
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}
