package commands

import (
	"github.com/spf13/cobra"

	"github.com/cplee/ecsdeploy/cmd/ecsdeploy/handlers"
)

// Publish returns the command that uploads the cloud assembly to S3.
func Publish() *cobra.Command {
	opts := handlers.PublishOptions{}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the synthesized cloud assembly to S3",
		Long: `Upload every file of the cloud assembly to
s3://<bucket>/<prefix>/<app>/<timestamp>/ and then point
s3://<bucket>/<prefix>/<app>/latest at it.

Credentials come from the default AWS chain unless --access-key and
--secret-key (or ECSDEPLOY_ACCESS_KEY / ECSDEPLOY_SECRET_KEY) are set,
which together with --endpoint and --path-style target S3-compatible stores.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ConfigPath = configPath(cmd)
			return handlers.Publish(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Destination bucket (required)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&opts.Dir, "dir", handlers.DefaultAssemblyDir, "Cloud assembly directory")
	cmd.Flags().StringVar(&opts.Region, "region", "", "Bucket region (default: pipeline region)")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "S3 endpoint override for S3-compatible stores")
	cmd.Flags().StringVar(&opts.AccessKey, "access-key", "", "Static access key")
	cmd.Flags().StringVar(&opts.SecretKey, "secret-key", "", "Static secret key")
	cmd.Flags().BoolVar(&opts.PathStyle, "path-style", false, "Use path-style addressing")
	cmd.Flags().BoolVar(&opts.CreateBucket, "create-bucket", false, "Create the bucket if it does not exist")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "Parallel uploads (default 8)")

	return cmd
}
