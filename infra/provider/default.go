package provider

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// Settings is the gcp:project / gcp:region pair every stack must set.
type Settings struct {
	ProjectID string
	Region    string
}

func Load(ctx *pulumi.Context) Settings {
	gcpCfg := config.New(ctx, "gcp")
	return Settings{
		ProjectID: gcpCfg.Require("project"),
		Region:    gcpCfg.Require("region"),
	}
}

// SetupDefaultProvider returns the provider every outlet-dashboard resource
// is created with, labelled so billing can be split per app.
func SetupDefaultProvider(ctx *pulumi.Context) (*gcp.Provider, error) {
	s := Load(ctx)

	return gcp.NewProvider(ctx, "gcpProvider", &gcp.ProviderArgs{
		Project:             pulumi.String(s.ProjectID),
		Region:              pulumi.String(s.Region),
		UserProjectOverride: pulumi.Bool(true),
		DefaultLabels: pulumi.StringMap{
			"app":   pulumi.String("outlet-dashboard"),
			"stack": pulumi.String(ctx.Stack()),
		},
	})
}
