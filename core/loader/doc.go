// Package loader registers HTTP features on the fiber application.
//
// Each feature (recipes, integrity) implements Feature. The start command registers them
// on a Manager and calls LoadAll once the global middleware is in place; disabled
// features are skipped.
//
//	mgr := loader.NewManager()
//	mgr.Register(recipes.NewFeature(svc, log))
//	if err := mgr.LoadAll(app); err != nil {
//	    return err
//	}
package loader
