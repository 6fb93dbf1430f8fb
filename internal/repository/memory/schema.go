package memory

import (
	"fmt"

	"github.com/clinicore/records-api/pkg/errors"
)

type refAction int

const (
	onDeleteCascade refAction = iota
	onDeleteRestrict
	onDeleteSetNull
)

// rowRef identifies one row. id2 is only set for the junction table.
type rowRef struct {
	table string
	id    int64
	id2   int64
}

// fkEdge is one foreign key: a child table column referencing a parent table,
// with its declared delete action. All edges cascade on key update.
type fkEdge struct {
	table      string
	constraint string
	parent     string
	onDelete   refAction

	// refs returns the child rows referencing parentID.
	refs func(s *Store, parentID int64) []rowRef
	// setNull clears the reference on one child row (set-null edges only).
	setNull func(s *Store, childID int64)
	// rekey rewrites child references from oldID to newID.
	rekey func(s *Store, oldID, newID int64)
}

var fkEdges = []fkEdge{
	{
		table: tableDoctors, constraint: "fk_doctors_clinic", parent: tableClinics, onDelete: onDeleteCascade,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, d := range s.doctors {
				if d.ClinicID == id {
					out = append(out, rowRef{table: tableDoctors, id: d.ID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, d := range s.doctors {
				if d.ClinicID == oldID {
					d.ClinicID = newID
				}
			}
		},
	},
	{
		table: tableServices, constraint: "fk_services_clinic", parent: tableClinics, onDelete: onDeleteCascade,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, v := range s.services {
				if v.ClinicID == id {
					out = append(out, rowRef{table: tableServices, id: v.ID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, v := range s.services {
				if v.ClinicID == oldID {
					v.ClinicID = newID
				}
			}
		},
	},
	{
		table: tableAppointments, constraint: "fk_appointments_clinic", parent: tableClinics, onDelete: onDeleteCascade,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, a := range s.appointments {
				if a.ClinicID == id {
					out = append(out, rowRef{table: tableAppointments, id: a.ID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, a := range s.appointments {
				if a.ClinicID == oldID {
					a.ClinicID = newID
				}
			}
		},
	},
	{
		table: tableDoctorSpecialties, constraint: "fk_doctor_specialties_doctor", parent: tableDoctors, onDelete: onDeleteCascade,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for k := range s.doctorSpecialties {
				if k.DoctorID == id {
					out = append(out, rowRef{table: tableDoctorSpecialties, id: k.DoctorID, id2: k.SpecialtyID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for k, link := range s.doctorSpecialties {
				if k.DoctorID == oldID {
					delete(s.doctorSpecialties, k)
					link.DoctorID = newID
					s.doctorSpecialties[linkKey{DoctorID: newID, SpecialtyID: k.SpecialtyID}] = link
				}
			}
		},
	},
	{
		table: tableDoctorSpecialties, constraint: "fk_doctor_specialties_specialty", parent: tableSpecialties, onDelete: onDeleteCascade,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for k := range s.doctorSpecialties {
				if k.SpecialtyID == id {
					out = append(out, rowRef{table: tableDoctorSpecialties, id: k.DoctorID, id2: k.SpecialtyID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for k, link := range s.doctorSpecialties {
				if k.SpecialtyID == oldID {
					delete(s.doctorSpecialties, k)
					link.SpecialtyID = newID
					s.doctorSpecialties[linkKey{DoctorID: k.DoctorID, SpecialtyID: newID}] = link
				}
			}
		},
	},
	{
		table: tableAppointments, constraint: "fk_appointments_doctor", parent: tableDoctors, onDelete: onDeleteCascade,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, a := range s.appointments {
				if a.DoctorID == id {
					out = append(out, rowRef{table: tableAppointments, id: a.ID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, a := range s.appointments {
				if a.DoctorID == oldID {
					a.DoctorID = newID
				}
			}
		},
	},
	{
		table: tableAppointments, constraint: "fk_appointments_patient", parent: tablePatients, onDelete: onDeleteCascade,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, a := range s.appointments {
				if a.PatientID == id {
					out = append(out, rowRef{table: tableAppointments, id: a.ID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, a := range s.appointments {
				if a.PatientID == oldID {
					a.PatientID = newID
				}
			}
		},
	},
	{
		// Services can never be deleted while an appointment references them;
		// they are only deprecated by application convention.
		table: tableAppointments, constraint: "fk_appointments_service", parent: tableServices, onDelete: onDeleteRestrict,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, a := range s.appointments {
				if a.ServiceID == id {
					out = append(out, rowRef{table: tableAppointments, id: a.ID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, a := range s.appointments {
				if a.ServiceID == oldID {
					a.ServiceID = newID
				}
			}
		},
	},
	{
		table: tablePayments, constraint: "fk_payments_appointment", parent: tableAppointments, onDelete: onDeleteCascade,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, p := range s.payments {
				if p.AppointmentID == id {
					out = append(out, rowRef{table: tablePayments, id: p.ID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, p := range s.payments {
				if p.AppointmentID == oldID {
					p.AppointmentID = newID
				}
			}
		},
	},
	{
		table: tablePrescriptions, constraint: "fk_prescriptions_appointment", parent: tableAppointments, onDelete: onDeleteCascade,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, p := range s.prescriptions {
				if p.AppointmentID == id {
					out = append(out, rowRef{table: tablePrescriptions, id: p.ID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, p := range s.prescriptions {
				if p.AppointmentID == oldID {
					p.AppointmentID = newID
				}
			}
		},
	},
	{
		table: tablePrescriptions, constraint: "fk_prescriptions_patient", parent: tablePatients, onDelete: onDeleteCascade,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, p := range s.prescriptions {
				if p.PatientID == id {
					out = append(out, rowRef{table: tablePrescriptions, id: p.ID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, p := range s.prescriptions {
				if p.PatientID == oldID {
					p.PatientID = newID
				}
			}
		},
	},
	{
		// A doctor with prescriptions on file cannot be removed directly.
		table: tablePrescriptions, constraint: "fk_prescriptions_doctor", parent: tableDoctors, onDelete: onDeleteRestrict,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, p := range s.prescriptions {
				if p.DoctorID == id {
					out = append(out, rowRef{table: tablePrescriptions, id: p.ID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, p := range s.prescriptions {
				if p.DoctorID == oldID {
					p.DoctorID = newID
				}
			}
		},
	},
	{
		table: tableMedicalRecords, constraint: "fk_medical_records_patient", parent: tablePatients, onDelete: onDeleteCascade,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, r := range s.medicalRecords {
				if r.PatientID == id {
					out = append(out, rowRef{table: tableMedicalRecords, id: r.ID})
				}
			}
			return out
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, r := range s.medicalRecords {
				if r.PatientID == oldID {
					r.PatientID = newID
				}
			}
		},
	},
	{
		// Records survive appointment deletion with the reference nulled.
		table: tableMedicalRecords, constraint: "fk_medical_records_appointment", parent: tableAppointments, onDelete: onDeleteSetNull,
		refs: func(s *Store, id int64) []rowRef {
			var out []rowRef
			for _, r := range s.medicalRecords {
				if r.AppointmentID != nil && *r.AppointmentID == id {
					out = append(out, rowRef{table: tableMedicalRecords, id: r.ID})
				}
			}
			return out
		},
		setNull: func(s *Store, childID int64) {
			if r, ok := s.medicalRecords[childID]; ok {
				r.AppointmentID = nil
			}
		},
		rekey: func(s *Store, oldID, newID int64) {
			for _, r := range s.medicalRecords {
				if r.AppointmentID != nil && *r.AppointmentID == oldID {
					id := newID
					r.AppointmentID = &id
				}
			}
		},
	},
}

// deleteRow removes a row and everything its cascade edges reach, in three
// phases over the dependency graph: collect the transitive cascade closure,
// verify the restrict edges, then apply set-nulls to surviving rows and drop
// the closure. Restrict checks run before any mutation. On the deletion
// target itself every referencing row counts, even one the cascade would
// have removed; on rows the cascade reaches, only references from outside
// the closure block, since the in-closure ones vanish with their parent.
// All-or-nothing: a restrict violation leaves the store untouched. Callers
// hold s.mu.
func (s *Store) deleteRow(start rowRef) error {
	closure := map[rowRef]bool{start: true}
	queue := []rowRef{start}
	for len(queue) > 0 {
		row := queue[0]
		queue = queue[1:]
		for i := range fkEdges {
			e := &fkEdges[i]
			if e.parent != row.table || e.onDelete != onDeleteCascade {
				continue
			}
			for _, child := range e.refs(s, row.id) {
				if !closure[child] {
					closure[child] = true
					queue = append(queue, child)
				}
			}
		}
	}

	for row := range closure {
		for i := range fkEdges {
			e := &fkEdges[i]
			if e.parent != row.table || e.onDelete != onDeleteRestrict {
				continue
			}
			for _, child := range e.refs(s, row.id) {
				if row != start && closure[child] {
					continue
				}
				return errors.Restricted(row.table, e.constraint,
					fmt.Sprintf("%s row %d is referenced by %s", row.table, row.id, e.table))
			}
		}
	}

	for row := range closure {
		for i := range fkEdges {
			e := &fkEdges[i]
			if e.parent != row.table || e.onDelete != onDeleteSetNull {
				continue
			}
			for _, child := range e.refs(s, row.id) {
				if !closure[child] {
					e.setNull(s, child.id)
				}
			}
		}
	}

	for row := range closure {
		s.removeRow(row)
	}
	return nil
}

// removeRow drops a single row and maintains the unique indexes.
func (s *Store) removeRow(row rowRef) {
	switch row.table {
	case tableClinics:
		delete(s.clinics, row.id)
	case tableSpecialties:
		if sp, ok := s.specialties[row.id]; ok {
			delete(s.specialtyNames, indexKey(sp.Name))
			delete(s.specialties, row.id)
		}
	case tableDoctors:
		if d, ok := s.doctors[row.id]; ok {
			delete(s.doctorEmails, indexKey(d.Email))
			delete(s.doctors, row.id)
		}
	case tableDoctorSpecialties:
		delete(s.doctorSpecialties, linkKey{DoctorID: row.id, SpecialtyID: row.id2})
	case tablePatients:
		if p, ok := s.patients[row.id]; ok {
			delete(s.patientEmails, indexKey(p.Email))
			delete(s.patients, row.id)
		}
	case tableServices:
		delete(s.services, row.id)
	case tableAppointments:
		delete(s.appointments, row.id)
	case tablePayments:
		delete(s.payments, row.id)
	case tablePrescriptions:
		delete(s.prescriptions, row.id)
	case tableMedicalRecords:
		delete(s.medicalRecords, row.id)
	}
}

// Renumber changes a parent row's id and propagates the new value to every
// child foreign key, the way ON UPDATE CASCADE does.
func (s *Store) Renumber(table string, oldID, newID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newID <= 0 {
		return errors.NotNull(table, "id")
	}
	if oldID == newID {
		return nil
	}

	switch table {
	case tableClinics:
		row, ok := s.clinics[oldID]
		if !ok {
			return errors.NotFound(table, oldID)
		}
		if _, taken := s.clinics[newID]; taken {
			return errors.Unique(table, "pkey", fmt.Sprintf("id %d already exists", newID))
		}
		delete(s.clinics, oldID)
		row.ID = newID
		s.clinics[newID] = row
	case tableSpecialties:
		row, ok := s.specialties[oldID]
		if !ok {
			return errors.NotFound(table, oldID)
		}
		if _, taken := s.specialties[newID]; taken {
			return errors.Unique(table, "pkey", fmt.Sprintf("id %d already exists", newID))
		}
		delete(s.specialties, oldID)
		row.ID = newID
		s.specialties[newID] = row
		s.specialtyNames[indexKey(row.Name)] = newID
	case tableDoctors:
		row, ok := s.doctors[oldID]
		if !ok {
			return errors.NotFound(table, oldID)
		}
		if _, taken := s.doctors[newID]; taken {
			return errors.Unique(table, "pkey", fmt.Sprintf("id %d already exists", newID))
		}
		delete(s.doctors, oldID)
		row.ID = newID
		s.doctors[newID] = row
		s.doctorEmails[indexKey(row.Email)] = newID
	case tablePatients:
		row, ok := s.patients[oldID]
		if !ok {
			return errors.NotFound(table, oldID)
		}
		if _, taken := s.patients[newID]; taken {
			return errors.Unique(table, "pkey", fmt.Sprintf("id %d already exists", newID))
		}
		delete(s.patients, oldID)
		row.ID = newID
		s.patients[newID] = row
		s.patientEmails[indexKey(row.Email)] = newID
	case tableServices:
		row, ok := s.services[oldID]
		if !ok {
			return errors.NotFound(table, oldID)
		}
		if _, taken := s.services[newID]; taken {
			return errors.Unique(table, "pkey", fmt.Sprintf("id %d already exists", newID))
		}
		delete(s.services, oldID)
		row.ID = newID
		s.services[newID] = row
	case tableAppointments:
		row, ok := s.appointments[oldID]
		if !ok {
			return errors.NotFound(table, oldID)
		}
		if _, taken := s.appointments[newID]; taken {
			return errors.Unique(table, "pkey", fmt.Sprintf("id %d already exists", newID))
		}
		delete(s.appointments, oldID)
		row.ID = newID
		s.appointments[newID] = row
	default:
		return errors.NotFound(table, oldID)
	}

	for i := range fkEdges {
		e := &fkEdges[i]
		if e.parent == table && e.rekey != nil {
			e.rekey(s, oldID, newID)
		}
	}
	if newID > s.seq[table] {
		s.seq[table] = newID
	}
	return nil
}
