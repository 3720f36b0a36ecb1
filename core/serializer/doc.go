// Package serializer writes values as JSON, YAML or a flattened field/value table.
//
// Reports are rendered through a Writer by the CLI and encoded with Marshal before they
// are stored in the bucket.
//
//	w, err := serializer.NewWriter(serializer.FormatYAML, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	return w.Serialize(rep)
package serializer
