package identity

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/identityplatform"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupIdentity turns on Firebase sign-in for the dashboard frontend when
// app:authEnabled is set. With auth off it creates nothing and returns no
// resources.
func SetupIdentity(ctx *pulumi.Context, prov *gcp.Provider) ([]pulumi.Resource, error) {
	if !config.New(ctx, "app").GetBool("authEnabled") {
		return nil, nil
	}

	api, err := projects.NewService(ctx, "identityToolkitService", &projects.ServiceArgs{
		Service: pulumi.String("identitytoolkit.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	// Store managers sign in with email links issued by the ops team.
	cfg, err := identityplatform.NewConfig(ctx, "identityPlatformConfig", &identityplatform.ConfigArgs{
		SignIn: &identityplatform.ConfigSignInArgs{
			Email: &identityplatform.ConfigSignInEmailArgs{
				Enabled:          pulumi.Bool(true),
				PasswordRequired: pulumi.Bool(false),
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{api}),
	)
	if err != nil {
		return nil, err
	}

	return []pulumi.Resource{api, cfg}, nil
}
