// Package cssbuild keeps generated utility CSS up to date for an evolving set
// of class names.
//
// A Builder owns one compiler created from the caller's stylesheet. It
// recreates the compiler only when the effective stylesheet text changes and
// hands it only the classes it has not seen yet. Builds are queued and run one
// at a time in submission order:
//
//	b, err := cssbuild.New(cssbuild.Config{Source: discover.NewFileSource("web/**/*.html")})
//	if err != nil {
//		return err
//	}
//	defer b.Close()
//
//	result := b.Build(ctx, cssbuild.Request{Stylesheet: userCSS})
//	if result.Err != nil {
//		return result.Err
//	}
//	fmt.Print(result.CSS)
//
// Stylesheets without an @import get the bundled framework stylesheet
// imported first; see EffectiveSource.
package cssbuild
