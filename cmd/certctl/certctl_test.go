package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/repository"
	"github.com/SeakMengs/CourseCert/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCourseID = "course-v1:edX+DemoX+Demo_Course"

type fakePublisher struct {
	messages map[queue.QueueName]int
}

func (p *fakePublisher) Publish(queueName queue.QueueName, body []byte) error {
	p.messages[queueName]++
	return nil
}

type cliEnv struct {
	cli       *cli
	repo      *repository.Repository
	publisher *fakePublisher
	user      *model.User
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	logger := testutil.NewLogger(t)
	db := testutil.NewDB(t)
	repo := repository.NewRepository(db, logger)
	publisher := &fakePublisher{messages: make(map[queue.QueueName]int)}

	testutil.Create(t, db, &model.CourseOverview{ID: testCourseID, DisplayName: "Demo Course", Org: "edX", Number: "DemoX"})
	user := testutil.Create(t, db, &model.User{Username: "learner", Email: "learner@example.com"})

	return &cliEnv{
		cli:       &cli{cfg: config.Config{}, logger: logger, repo: repo, publisher: publisher},
		repo:      repo,
		publisher: publisher,
		user:      user,
	}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	root := newRootCmd(e.cli)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSwitchCommands(t *testing.T) {
	env := newCLIEnv(t)
	ctx := context.Background()

	out, err := env.run(t, "switch", "set", constant.SwitchAutoCertificateGeneration, "on", "--note", "launch")
	require.NoError(t, err)
	assert.Contains(t, out, "is now on")

	enabled, err := env.repo.WaffleSwitch.IsEnabled(ctx, nil, constant.SwitchAutoCertificateGeneration)
	require.NoError(t, err)
	assert.True(t, enabled)

	out, err = env.run(t, "switch", "list")
	require.NoError(t, err)
	assert.Contains(t, out, constant.SwitchAutoCertificateGeneration+"\ton\tlaunch")

	_, err = env.run(t, "switch", "set", constant.SwitchAutoCertificateGeneration, "maybe")
	assert.Error(t, err)
}

func TestAllowlistCommands(t *testing.T) {
	env := newCLIEnv(t)
	ctx := context.Background()

	_, err := env.run(t, "allowlist", "add", env.user.ID, testCourseID, "--notes", "exception")
	require.NoError(t, err)
	assert.Equal(t, 1, env.publisher.messages[queue.QueueCertificateSignal])

	ok, err := env.repo.Allowlist.IsOnAllowlist(ctx, nil, env.user.ID, testCourseID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = env.run(t, "allowlist", "add", "missing-user", testCourseID)
	assert.Error(t, err)

	_, err = env.run(t, "allowlist", "add", env.user.ID, "not-a-course-key")
	assert.Error(t, err)

	_, err = env.run(t, "allowlist", "remove", env.user.ID, testCourseID)
	require.NoError(t, err)

	_, err = env.run(t, "allowlist", "remove", env.user.ID, testCourseID)
	assert.Error(t, err)
}

func TestSelfGenerationCommand(t *testing.T) {
	env := newCLIEnv(t)
	ctx := context.Background()

	_, err := env.run(t, "self-generation", testCourseID, "on")
	require.NoError(t, err)

	enabled, err := env.repo.GenerationSetting.IsSelfGenerationEnabled(ctx, nil, testCourseID)
	require.NoError(t, err)
	assert.True(t, enabled)

	_, err = env.run(t, "self-generation", testCourseID, "off")
	require.NoError(t, err)

	enabled, err = env.repo.GenerationSetting.IsSelfGenerationEnabled(ctx, nil, testCourseID)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestRegenerateCommand(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "regenerate", testCourseID, env.user.ID, "other-user")
	require.NoError(t, err)
	assert.Contains(t, out, env.user.ID+"\tenqueued=true")
	assert.Equal(t, 2, env.publisher.messages[queue.QueueCertificateGenerate])

	_, err = env.run(t, "regenerate", testCourseID)
	assert.Error(t, err)
}
