// Package proxyhost keeps the proxy manager's generated nginx configuration in
// line with address changes made by a reconciliation pass.
//
// The proxy manager renders allowlist addresses into its proxy host files, so a
// row update alone is not enough. Each address change is substituted textually,
// bounded on word boundaries so that 10.0.0.1 never matches inside 10.0.0.12.
//
//   - ContainerPatcher runs sed inside the container over Dir/Pattern.
//   - FilePatcher edits the files directly through an afero filesystem.
//   - ContainerReloader runs `nginx -s reload` once the files are patched.
package proxyhost
