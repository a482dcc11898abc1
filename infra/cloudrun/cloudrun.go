package cloudrun

import (
	"fmt"
	"strconv"

	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrun"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/outlet-dashboard/infra/common"
	"github.com/GregMSThompson/outlet-dashboard/infra/secret"
)

// sheetsKeySecretID holds an optional service account key for Sheets. When
// sheets:credentials is unset the API uses its own service account.
const sheetsKeySecretID = "sheetsServiceAccountKey"

func SetupCloudRun(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*serviceaccount.Account, error) {
	img, err := buildApiImage(ctx, res...)
	if err != nil {
		return nil, err
	}

	srv, err := enableCloudRun(ctx, prov)
	if err != nil {
		return nil, err
	}

	apiSA, err := createServiceAccount(ctx, prov)
	if err != nil {
		return nil, err
	}

	sheetsSecret, err := createSheetsSecret(ctx, prov, apiSA)
	if err != nil {
		return nil, err
	}

	svc, err := createCloudRunService(ctx, img, apiSA, sheetsSecret, prov, srv)
	if err != nil {
		return nil, err
	}

	err = setIAMAccessPolicy(ctx, svc, prov)
	if err != nil {
		return nil, err
	}

	return apiSA, nil
}

func buildApiImage(ctx *pulumi.Context, res ...pulumi.Resource) (*docker.Image, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	hash, err := common.GenerateHash("../", "infra", "_examples")
	if err != nil {
		return nil, err
	}

	return docker.NewImage(ctx, "apiImage", &docker.ImageArgs{
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/amd64"),
			Context:    pulumi.String(".."),                    // build from repo root
			Dockerfile: pulumi.String("../cmd/api/Dockerfile"), // Dockerfile path relative to repo root
		},
		ImageName: pulumi.String(fmt.Sprintf("%s-docker.pkg.dev/%s/outlet-dashboard/api:%s", region, projectID, hash)),
	},
		pulumi.DependsOn(res),
	)
}

func enableCloudRun(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "cloudRunService", &projects.ServiceArgs{
		Service: pulumi.String("run.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createServiceAccount(ctx *pulumi.Context, prov *gcp.Provider) (*serviceaccount.Account, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	apiSA, err := serviceaccount.NewAccount(ctx, "apiServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("outlet-dashboard-api"),
		DisplayName: pulumi.String("Outlet Dashboard API"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	member := apiSA.Email.ApplyT(func(email string) string {
		return fmt.Sprintf("serviceAccount:%s", email)
	}).(pulumi.StringOutput)

	roles := map[string]string{
		"firestoreAccess": "roles/datastore.user",   // chat history read/write
		"vertexAccess":    "roles/aiplatform.user", // product chat model
	}
	for name, role := range roles {
		_, err = projects.NewIAMMember(ctx, name, &projects.IAMMemberArgs{
			Role:    pulumi.String(role),
			Member:  member,
			Project: pulumi.String(projectID),
		},
			pulumi.Provider(prov),
		)
		if err != nil {
			return nil, err
		}
	}

	return apiSA, nil
}

// createSheetsSecret returns the secret id to pass as SHEETSCREDENTIALSSECRET,
// or an empty string when no key is configured.
func createSheetsSecret(ctx *pulumi.Context, prov *gcp.Provider, apiSA *serviceaccount.Account) (pulumi.StringOutput, error) {
	sheetsCfg := config.New(ctx, "sheets")
	key, err := sheetsCfg.TrySecret("credentials")
	if err != nil {
		return pulumi.String("").ToStringOutput(), nil
	}

	return secret.SetupSheetsKey(ctx, prov, apiSA, sheetsKeySecretID, key)
}

func createCloudRunService(ctx *pulumi.Context,
	img *docker.Image,
	apiSA *serviceaccount.Account,
	sheetsSecret pulumi.StringOutput,
	prov *gcp.Provider,
	res ...pulumi.Resource) (*cloudrun.Service, error) {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")
	appCfg := config.New(ctx, "app")
	sheetsCfg := config.New(ctx, "sheets")

	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")
	minScale := crCfg.Require("minScale")
	maxScale := crCfg.Require("maxScale")
	cpu := crCfg.Require("cpu")
	memory := crCfg.Require("memory")
	concurrency := crCfg.Require("concurrency")
	logLevel := crCfg.Require("logLevel")
	timeout, _ := strconv.Atoi(crCfg.Require("timeout"))

	env := map[string]pulumi.StringInput{
		"PROJECTID":               pulumi.String(projectID),
		"REGION":                  pulumi.String(region),
		"LOGLEVEL":                pulumi.String(logLevel),
		"VERTEXMODEL":             pulumi.String(appCfg.Get("vertexModel")),
		"AUTHENABLED":             pulumi.String(strconv.FormatBool(appCfg.GetBool("authEnabled"))),
		"ALLOWEDORIGINS":          pulumi.String(appCfg.Get("allowedOrigins")),
		"DASHBOARDSPREADSHEETID":  pulumi.String(sheetsCfg.Require("dashboardSpreadsheetId")),
		"CHECKLISTSPREADSHEETID":  pulumi.String(sheetsCfg.Require("checklistSpreadsheetId")),
		"STOCKOUTSPREADSHEETID":   pulumi.String(sheetsCfg.Get("stockOutSpreadsheetId")),
		"SHEETSCREDENTIALSSECRET": sheetsSecret,
		"SHEETSREADSPERMINUTE":    pulumi.String(sheetsCfg.Get("readsPerMinute")),
	}
	envs := cloudrun.ServiceTemplateSpecContainerEnvArray{}
	for _, name := range []string{
		"PROJECTID", "REGION", "LOGLEVEL", "VERTEXMODEL", "AUTHENABLED", "ALLOWEDORIGINS",
		"DASHBOARDSPREADSHEETID", "CHECKLISTSPREADSHEETID", "STOCKOUTSPREADSHEETID", "SHEETSCREDENTIALSSECRET",
		"SHEETSREADSPERMINUTE",
	} {
		envs = append(envs, &cloudrun.ServiceTemplateSpecContainerEnvArgs{
			Name:  pulumi.String(name),
			Value: env[name],
		})
	}

	return cloudrun.NewService(ctx, "apiService", &cloudrun.ServiceArgs{
		Location: pulumi.String(region),

		Template: &cloudrun.ServiceTemplateArgs{

			Metadata: &cloudrun.ServiceTemplateMetadataArgs{
				// ---- AUTOSCALING + INSTANCE SIZE ----
				Annotations: pulumi.StringMap{
					// Autoscaling bounds
					"autoscaling.knative.dev/minScale": pulumi.String(minScale),
					"autoscaling.knative.dev/maxScale": pulumi.String(maxScale),

					// Instance sizing
					"run.googleapis.com/cpu":    pulumi.String(cpu),
					"run.googleapis.com/memory": pulumi.String(memory),

					// Allow throttling when idle (reduces cost)
					"run.googleapis.com/cpu-throttling": pulumi.String("true"),

					// Set the number of concurrent requests per container
					"run.googleapis.com/container-concurrency": pulumi.String(concurrency),
				},
			},

			Spec: &cloudrun.ServiceTemplateSpecArgs{
				ServiceAccountName: apiSA.Email,
				TimeoutSeconds:     pulumi.Int(timeout),

				Containers: cloudrun.ServiceTemplateSpecContainerArray{
					&cloudrun.ServiceTemplateSpecContainerArgs{
						Image: img.ImageName,
						Ports: cloudrun.ServiceTemplateSpecContainerPortArray{
							&cloudrun.ServiceTemplateSpecContainerPortArgs{
								ContainerPort: pulumi.Int(8080),
							},
						},
						Envs: envs,
						LivenessProbe: &cloudrun.ServiceTemplateSpecContainerLivenessProbeArgs{
							HttpGet: &cloudrun.ServiceTemplateSpecContainerLivenessProbeHttpGetArgs{
								Path: pulumi.String("/healthz"),
							},
						},
					},
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

func setIAMAccessPolicy(ctx *pulumi.Context, svc *cloudrun.Service, prov *gcp.Provider) error {
	gcpCfg := config.New(ctx, "gcp")
	region := gcpCfg.Require("region")

	_, err := cloudrun.NewIamMember(ctx, "allowPublicInvoke", &cloudrun.IamMemberArgs{
		Service:  svc.Name,
		Location: pulumi.String(region),
		Role:     pulumi.String("roles/run.invoker"),

		// The dashboard frontend calls the API directly; Firebase auth is
		// enforced in the app when enabled.
		Member: pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	return err
}
