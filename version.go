package templates

import "github.com/aretw0/templates/pkg/describe"

// Version is the component version published by Describe.
const Version = describe.ComponentVersion

// TargetMarker tags builds for host detection. Overridden at link time with
// -ldflags "-X github.com/aretw0/templates.TargetMarker=...".
var TargetMarker = "templates-component"
