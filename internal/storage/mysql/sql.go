package mysql

// -----------------------------------------------------------------------------
// CLIENTS
// -----------------------------------------------------------------------------

const clientColumns = `
  c.id, c.nom, c.slug, c.langue, c.place_id, c.logo, c.secret_code,
  c.statut, c.business_statut, c.contact_nom, c.contact_email, c.contact_tel,
  c.notes_admin, c.created_at, c.updated_at`

const insertClientSQL = `
INSERT INTO clients
  (nom, slug, langue, place_id, logo, secret_code, statut, business_statut,
   contact_nom, contact_email, contact_tel, notes_admin)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateClientSQL = `
UPDATE clients SET
  nom             = ?,
  slug            = ?,
  langue          = ?,
  place_id        = ?,
  logo            = ?,
  secret_code     = ?,
  statut          = ?,
  business_statut = ?,
  contact_nom     = ?,
  contact_email   = ?,
  contact_tel     = ?,
  notes_admin     = ?
WHERE id = ?
`

const deleteClientSQL = `DELETE FROM clients WHERE id = ?`

const getClientSQL = `SELECT` + clientColumns + `
FROM clients c
WHERE c.id = ?
`

const getClientBySlugSQL = `SELECT` + clientColumns + `
FROM clients c
WHERE c.slug = ?
`

const listClientsSQL = `SELECT` + clientColumns + `
FROM clients c
ORDER BY c.id DESC
`

const slugExistsSQL = `SELECT EXISTS(SELECT 1 FROM clients WHERE slug = ?)`

// -----------------------------------------------------------------------------
// AVIS
// -----------------------------------------------------------------------------

const insertReviewSQL = `
INSERT INTO avis (client_id, note, commentaire, contact)
VALUES (?, ?, ?, ?)
`

const deleteReviewSQL = `DELETE FROM avis WHERE id = ?`

// Every review read joins the owning client's name and logo.
const reviewSelect = `
SELECT
  a.id, a.client_id, a.note, a.commentaire, a.contact, a.created_at,
  c.nom, c.logo
FROM avis a
JOIN clients c ON c.id = a.client_id
`

const getReviewSQL = reviewSelect + `WHERE a.id = ?`

// Newest first; aligns with the (client_id, created_at, id) index.
const listReviewsByClientSQL = reviewSelect + `
WHERE a.client_id = ?
ORDER BY a.created_at DESC, a.id DESC
`

const listReviewsSQL = reviewSelect + `
ORDER BY a.created_at DESC, a.id DESC
`

// -----------------------------------------------------------------------------
// ADMINS
// -----------------------------------------------------------------------------

const insertAdminSQL = `
INSERT INTO admins (id, nom, email, password_hash)
VALUES (?, ?, ?, ?)
`

const getAdminByEmailSQL = `
SELECT id, nom, email, password_hash, created_at
FROM admins
WHERE email = ?
`

const getAdminSQL = `
SELECT id, nom, email, password_hash, created_at
FROM admins
WHERE id = ?
`

const updateAdminSQL = `
UPDATE admins
SET nom = ?, email = ?, password_hash = ?
WHERE id = ?
`
