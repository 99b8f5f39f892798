// Package voucherio reads and writes voucher bags as YAML or JSON documents.
//
// A document is a sequence of mappings, one per voucher. Field order inside a
// mapping is kept on the way in and on the way out, so a bag that is exported
// and imported again iterates its fields exactly as before. Values must be
// scalars (strings, numbers, booleans or null); nested lists and objects are
// rejected with ErrInvalidRecord.
//
//	records, err := voucherio.DecodeYAML(f)
//	if err != nil {
//		return err
//	}
//	if err := voucherio.Import(bag, records); err != nil {
//		var me *voucher.MapError
//		if errors.As(err, &me) {
//			log.Printf("record %d rejected: %v", me.Index, me.Err)
//		}
//		return err
//	}
//
//	err = voucherio.ExportJSON(os.Stdout, bag)
//
// ReadFile and WriteFile pick the format from the file extension.
package voucherio
