package proxyhost

import (
	"context"
	"errors"
	"testing"

	"allowlist-sync/core/container"
	"allowlist-sync/core/container/mocks"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var defaultConfig = Config{Mode: ModeContainer, Dir: "/data/nginx/proxy_host", Pattern: "*", Reload: true}

func TestSedScript(t *testing.T) {
	script, err := sedScript(defaultConfig, "10.0.0.1", "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t,
		`set -- '/data/nginx/proxy_host'/*; [ -e "$1" ] || exit 0; sed -i 's/\b10\.0\.0\.1\b/10.0.0.2/g' "$@"`,
		script)
}

func TestSedScript_RejectsNonIPv4(t *testing.T) {
	_, err := sedScript(defaultConfig, "10.0.0.1'; rm -rf /", "10.0.0.2")
	assert.Error(t, err)

	_, err = sedScript(defaultConfig, "10.0.0.1", "::1")
	assert.Error(t, err)
}

func TestContainerPatcher(t *testing.T) {
	rt := new(mocks.Runtime)
	p := NewContainerPatcher(rt, "npm", defaultConfig)

	rt.On("Exec", mock.Anything, "npm", mock.MatchedBy(func(cmd []string) bool {
		return len(cmd) == 3 && cmd[0] == "sh" && cmd[1] == "-c"
	})).Return(container.ExecResult{}, nil).Once()

	assert.NoError(t, p.ApplyAddressChange(context.Background(), "10.0.0.1", "10.0.0.2"))
	rt.AssertExpectations(t)
}

func TestContainerPatcher_Failures(t *testing.T) {
	rt := new(mocks.Runtime)
	p := NewContainerPatcher(rt, "npm", defaultConfig)

	rt.On("Exec", mock.Anything, "npm", mock.Anything).
		Return(container.ExecResult{ExitCode: 2, Stderr: "sed: read error"}, nil).Once()
	err := p.ApplyAddressChange(context.Background(), "10.0.0.1", "10.0.0.2")
	assert.ErrorContains(t, err, "sed: read error")

	rt.On("Exec", mock.Anything, "npm", mock.Anything).
		Return(container.ExecResult{}, errors.New("daemon down")).Once()
	err = p.ApplyAddressChange(context.Background(), "10.0.0.1", "10.0.0.2")
	assert.ErrorContains(t, err, "daemon down")
}

func TestFilePatcher(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/nginx/proxy_host/1.conf",
		[]byte("allow 10.0.0.1;\nallow 10.0.0.12;\nallow 110.0.0.1;\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/data/nginx/proxy_host/2.conf",
		[]byte("allow 192.168.0.1;\n"), 0o644))

	p := NewFilePatcher(fs, defaultConfig, nil)
	require.NoError(t, p.ApplyAddressChange(context.Background(), "10.0.0.1", "10.0.0.2"))

	data, err := afero.ReadFile(fs, "/data/nginx/proxy_host/1.conf")
	require.NoError(t, err)
	assert.Equal(t, "allow 10.0.0.2;\nallow 10.0.0.12;\nallow 110.0.0.1;\n", string(data))

	data, err = afero.ReadFile(fs, "/data/nginx/proxy_host/2.conf")
	require.NoError(t, err)
	assert.Equal(t, "allow 192.168.0.1;\n", string(data))
}

func TestFilePatcher_NoFiles(t *testing.T) {
	p := NewFilePatcher(afero.NewMemMapFs(), defaultConfig, nil)
	assert.NoError(t, p.ApplyAddressChange(context.Background(), "10.0.0.1", "10.0.0.2"))
}

func TestFilePatcher_ReadOnly(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/data/nginx/proxy_host/1.conf", []byte("allow 10.0.0.1;"), 0o644))
	require.NoError(t, afero.WriteFile(base, "/data/nginx/proxy_host/2.conf", []byte("allow 10.0.0.1;"), 0o644))

	p := NewFilePatcher(afero.NewReadOnlyFs(base), defaultConfig, nil)
	err := p.ApplyAddressChange(context.Background(), "10.0.0.1", "10.0.0.2")
	require.Error(t, err)
	assert.ErrorContains(t, err, "1.conf")
	assert.ErrorContains(t, err, "2.conf")
}

func TestContainerReloader(t *testing.T) {
	rt := new(mocks.Runtime)
	r := NewContainerReloader(rt, "npm")

	rt.On("Exec", mock.Anything, "npm", []string{"nginx", "-s", "reload"}).Return(container.ExecResult{}, nil).Once()
	assert.NoError(t, r.Reload(context.Background()))

	rt.On("Exec", mock.Anything, "npm", []string{"nginx", "-s", "reload"}).
		Return(container.ExecResult{ExitCode: 1, Stderr: "nginx: [emerg] invalid"}, nil).Once()
	assert.ErrorContains(t, r.Reload(context.Background()), "invalid")
}

func TestNew(t *testing.T) {
	rt := new(mocks.Runtime)
	fs := afero.NewMemMapFs()

	p, r, err := New(defaultConfig, rt, "npm", fs, nil)
	require.NoError(t, err)
	assert.IsType(t, &ContainerPatcher{}, p)
	assert.IsType(t, &ContainerReloader{}, r)

	_, _, err = New(defaultConfig, nil, "", fs, nil)
	assert.Error(t, err)

	p, r, err = New(Config{Mode: ModeFile, Dir: "/srv/npm/proxy_host", Reload: true}, nil, "", fs, nil)
	require.NoError(t, err)
	assert.IsType(t, &FilePatcher{}, p)
	assert.Nil(t, r)

	p, r, err = New(Config{Mode: ModeNone}, rt, "npm", fs, nil)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Nil(t, r)

	_, _, err = New(Config{Mode: "ftp"}, rt, "npm", fs, nil)
	assert.Error(t, err)
}
