// Сборка и публикация образа editorlab.
//
// Функции вызываются из dagger CLI: test прогоняет тесты модуля, build собирает образы под
// linux/amd64 и linux/arm64, docs генерирует документацию сравнения и каталог ошибок.

package main

import (
	"context"
	"dagger/editorlab/internal/dagger"
	"fmt"
)

type Editorlab struct{}

func (m *Editorlab) GoBuildEnv(source *dagger.Directory) *dagger.Container {
	goCache := dag.CacheVolume("go")
	return dag.Container().
		From("golang:alpine").
		WithDirectory("/src", source, dagger.ContainerWithDirectoryOpts{
			Exclude: []string{"_examples/", "dagger-ci/", "docs/"},
		}).
		WithWorkdir("/src").
		WithEnvVariable("GOOS", "linux").
		WithEnvVariable("CGO_ENABLED", "0").
		WithMountedCache("/go/pkg/mod", goCache).
		WithExec([]string{"go", "mod", "download"})
}

// Test прогоняет go vet и тесты всех пакетов.
func (m *Editorlab) Test(ctx context.Context, source *dagger.Directory) (string, error) {
	return m.GoBuildEnv(source).
		WithExec([]string{"go", "vet", "./..."}).
		WithExec([]string{"go", "test", "./..."}).
		Stdout(ctx)
}

// Docs возвращает каталог с comparison.md и errors.md.
func (m *Editorlab) Docs(source *dagger.Directory) *dagger.Directory {
	return m.GoBuildEnv(source).
		WithExec([]string{"go", "run", "./cmd/docsgen", "-out", "/docs"}).
		Directory("/docs")
}

func (m *Editorlab) BackEnv(platform dagger.Platform, appBin *dagger.File, exportBin *dagger.File) *dagger.Container {
	return dag.Container(dagger.ContainerOpts{
		Platform: platform,
	}).
		From("alpine").
		WithEnvVariable("TZ", "Europe/Moscow").
		WithExec([]string{"apk", "add", "--no-cache", "curl", "tzdata"}).
		WithWorkdir("/app").
		WithFile("/app/app", appBin).
		WithFile("/usr/local/bin/docexport", exportBin).
		WithEnvVariable("LISTEN_ADDR", ":8080").
		WithEnvVariable("METRICS_ADDR", ":2112").
		WithExposedPort(8080).
		WithExposedPort(2112).
		WithEntrypoint([]string{"/app/app"})
}

func (m *Editorlab) Build(version string, source *dagger.Directory) []*dagger.Container {
	buildMatrix := []struct {
		Arch     string
		Suffix   string
		Platform dagger.Platform
	}{
		{
			Arch:     "amd64",
			Suffix:   "linux",
			Platform: dagger.Platform("linux/amd64"),
		},
		{
			Arch:     "arm64",
			Suffix:   "linux-arm64",
			Platform: dagger.Platform("linux/arm64/v8"),
		},
	}

	ldflags := fmt.Sprintf("-s -w -X main.version=%s", version)

	var images []*dagger.Container
	for _, buildParam := range buildMatrix {
		appBin := "/build/editorlab-" + buildParam.Suffix
		exportBin := "/build/docexport-" + buildParam.Suffix

		builder := m.GoBuildEnv(source).
			WithEnvVariable("GOARCH", buildParam.Arch).
			WithExec([]string{"go", "build", "-o", appBin, "-ldflags", ldflags, "./cmd/editorlab"}).
			WithExec([]string{"go", "build", "-o", exportBin, "-ldflags", "-s -w", "./cmd/docexport"})

		image := m.BackEnv(
			buildParam.Platform,
			builder.File(appBin),
			builder.File(exportBin),
		).
			WithLabel("org.opencontainers.image.source", "https://github.com/aisa-it/editorlab").
			WithLabel("org.opencontainers.image.version", version).
			WithAnnotation("org.opencontainers.image.source", "https://github.com/aisa-it/editorlab")
		images = append(images, image)
	}
	return images
}

func (m *Editorlab) Publish(
	ctx context.Context,
	images []*dagger.Container,
	registrySecret *dagger.Secret,
	registryUser string,
	imageName string,
) (string, error) {
	return dag.Container().
		WithRegistryAuth("ghcr.io", registryUser, registrySecret).
		Publish(ctx, "ghcr.io/"+imageName, dagger.ContainerPublishOpts{PlatformVariants: images})
}

func (m *Editorlab) Export(
	ctx context.Context,
	images []*dagger.Container,
	imageName string,
) (string, error) {
	return dag.Container().
		Export(ctx, imageName, dagger.ContainerExportOpts{PlatformVariants: images})
}

func (m *Editorlab) BuildLocal(ctx context.Context, name string, source *dagger.Directory) (string, error) {
	return m.Export(ctx, m.Build("v0.1.0", source), name)
}

// BuildApp прогоняет тесты, затем публикует образ с тегом версии и latest.
func (m *Editorlab) BuildApp(ctx context.Context, version string, source *dagger.Directory,
	registrySecret *dagger.Secret,
	registryUser string,
	imageName string,
) error {
	if _, err := m.Test(ctx, source); err != nil {
		return err
	}

	images := m.Build(version, source)
	for _, tag := range []string{version, "latest"} {
		ref, err := m.Publish(ctx, images, registrySecret, registryUser, fmt.Sprintf("%s:%s", imageName, tag))
		if err != nil {
			return err
		}
		fmt.Println(ref)
	}
	return nil
}
